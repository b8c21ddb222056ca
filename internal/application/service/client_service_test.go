package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClientService_CreateClient(t *testing.T) {
	repo := new(mockClientRepo)
	svc := NewClientService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Client) bool {
		return c.ClientName == "Acme" && c.Email == nil && *c.Country == "India"
	})).Return(nil)

	client, err := svc.CreateClient(context.Background(), &ClientInput{
		ClientName: "  Acme ",
		Email:      strPtr("  "),
		Country:    strPtr(" India"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", client.ClientName)
	repo.AssertExpectations(t)
}

func TestClientService_CreateClient_Errors(t *testing.T) {
	repo := new(mockClientRepo)
	svc := NewClientService(repo)

	_, err := svc.CreateClient(context.Background(), &ClientInput{ClientName: " "})
	assertAppError(t, err, http.StatusUnprocessableEntity)

	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)
	_, err = svc.CreateClient(context.Background(), &ClientInput{ClientName: "Acme"})
	assertAppError(t, err, http.StatusConflict)
}

func TestClientService_LookupClient(t *testing.T) {
	repo := new(mockClientRepo)
	svc := NewClientService(repo)
	ctx := context.Background()

	repo.On("GetByName", mock.Anything, "Acme").Return(&entity.Client{ClientName: "Acme"}, nil)
	repo.On("GetByName", mock.Anything, "acme").Return(nil, nil)

	client, err := svc.LookupClient(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", client.ClientName)

	_, err = svc.LookupClient(ctx, "acme")
	assertAppError(t, err, http.StatusNotFound)

	_, err = svc.LookupClient(ctx, "")
	assertAppError(t, err, http.StatusBadRequest)
}

func TestClientService_UpdateClient_KeepsNameWhenBlank(t *testing.T) {
	repo := new(mockClientRepo)
	svc := NewClientService(repo)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(&entity.Client{ID: id, ClientName: "Acme"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	client, err := svc.UpdateClient(context.Background(), id, &ClientInput{Phone: strPtr("+91 98765 43210")})
	require.NoError(t, err)
	assert.Equal(t, "Acme", client.ClientName)
	assert.Equal(t, "+91 98765 43210", *client.Phone)
}

func TestClientService_ListClients(t *testing.T) {
	repo := new(mockClientRepo)
	svc := NewClientService(repo)
	params := &pagination.PaginationParams{Page: 2, PerPage: 1}

	repo.On("List", mock.Anything, params, "ac").Return([]entity.Client{{ClientName: "Acme"}}, int64(3), nil)

	result, err := svc.ListClients(context.Background(), params, "ac")
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(3), result.Pagination.Total)
}

func TestClientService_DeleteClient_NotFound(t *testing.T) {
	repo := new(mockClientRepo)
	svc := NewClientService(repo)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, nil)

	err := svc.DeleteClient(context.Background(), id)

	assertAppError(t, err, http.StatusNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
