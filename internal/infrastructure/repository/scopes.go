package repository

import (
	"errors"
	"strings"
	"time"

	domainRepo "github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/pkg/pagination"
	"gorm.io/gorm"
)

// SearchScope matches term case-insensitively as a substring of any column.
// An empty term leaves the query untouched. GORM parenthesizes the OR group
// when other conditions are present.
func SearchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + escapeLike(term) + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, c := range columns {
			conds[i] = c + " ILIKE ?"
			args[i] = like
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// DateRangeScope bounds column to [from, to], either end optional.
func DateRangeScope(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", *from)
		}
		if to != nil {
			db = db.Where(column+" <= ?", *to)
		}
		return db
	}
}

// PaginateScope applies offset and limit. Nil params mean no paging.
func PaginateScope(p *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p == nil {
			return db
		}
		p.Validate()
		return db.Offset(p.Offset()).Limit(p.PerPage)
	}
}

// OrderScope sorts by sortBy when it is whitelisted, otherwise by fallback.
func OrderScope(sortBy, sortOrder string, allowed map[string]bool, fallback string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column := fallback
		if allowed[sortBy] {
			column = sortBy
		}
		order := "DESC"
		if strings.EqualFold(sortOrder, "asc") {
			order = "ASC"
		}
		return db.Order(column + " " + order)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

// translateError maps driver constraint errors to domain errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "SQLSTATE 23505") {
		return domainRepo.ErrDuplicate
	}
	return err
}
