//go:build functional

package test_functional

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/models"
)

type (
	authEnvelope struct {
		Success bool            `json:"success"`
		Data    models.AuthResp `json:"data"`
	}

	contactEnvelope struct {
		Success bool                   `json:"success"`
		Data    models.ContactEnvelope `json:"data"`
	}

	listEnvelope struct {
		Success bool                   `json:"success"`
		Data    models.ContactListResp `json:"data"`
	}
)

func registerUser(t *testing.T, ctx context.Context, email string) models.AuthResp {
	t.Helper()

	resp, err := resty.New().
		R().
		SetContext(ctx).
		SetResult(&authEnvelope{}).
		SetBody(models.RegisterReq{Email: email, Password: "111111111111", FirstName: "Test", LastName: "User"}).
		Post(endpoint("/api/auth/register"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())

	return resp.Result().(*authEnvelope).Data
}

func TestRegister(t *testing.T) {
	t.Run("successful register", func(t *testing.T) {
		defer FlushDB()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		got := registerUser(t, ctx, "test@gmail.com")
		assert.NotEmpty(t, got.Token)

		var (
			id    uint64
			email string
			hash  string
		)
		err := DBConn.QueryRow(ctx, "SELECT id, email, password FROM users WHERE id=$1", got.User.ID).Scan(&id, &email, &hash)
		assert.Nil(t, err)

		assert.Equal(t, "test@gmail.com", email)
		assert.NotEqual(t, "111111111111", hash)
	})

	t.Run("bad body", func(t *testing.T) {
		defer FlushDB()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		resp, err := resty.New().
			R().
			SetHeader("Content-Type", "application/json").
			SetContext(ctx).
			SetBody(`
			{"something": "???"}
		`).
			Post(endpoint("/api/auth/register"))
		assert.Nil(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	})
}

func TestContactsCrud(t *testing.T) {
	defer FlushDB()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	user := registerUser(t, ctx, "ada@example.com")
	cl := resty.New().SetAuthToken(user.Token)

	resp, err := cl.R().
		SetContext(ctx).
		SetResult(&contactEnvelope{}).
		SetBody(map[string]interface{}{
			"name": "Ada Lovelace",
			"tags": []string{"Engineer", "Engineer"},
		}).
		Post(endpoint("/api/contacts"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	created := resp.Result().(*contactEnvelope).Data.Contact
	require.Len(t, created.Tags, 1)

	var links int
	err = DBConn.QueryRow(ctx, "SELECT COUNT(*) FROM contact_tags WHERE contact_id=$1", created.ID).Scan(&links)
	require.NoError(t, err)
	assert.Equal(t, 1, links)

	contactURL := endpoint(fmt.Sprintf("/api/contacts/%d", created.ID))

	resp, err = cl.R().
		SetContext(ctx).
		SetResult(&contactEnvelope{}).
		SetBody(map[string]interface{}{"isFavorite": true}).
		Put(contactURL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	updated := resp.Result().(*contactEnvelope).Data.Contact
	assert.True(t, updated.IsFavorite)
	assert.Equal(t, created.Name, updated.Name)
	assert.Len(t, updated.Tags, 1)

	// deleting the tag keeps the contact
	_, err = DBConn.Exec(ctx, "DELETE FROM tags WHERE id=$1", created.Tags[0].ID)
	require.NoError(t, err)

	resp, err = cl.R().
		SetContext(ctx).
		SetResult(&listEnvelope{}).
		SetQueryParams(map[string]string{"search": "lovelace", "sortBy": "name", "sortOrder": "asc"}).
		Get(endpoint("/api/contacts"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	list := resp.Result().(*listEnvelope).Data
	require.Len(t, list.Contacts, 1)
	assert.Empty(t, list.Contacts[0].Tags)
	assert.Equal(t, int64(1), list.Pagination.Total)

	resp, err = cl.R().SetContext(ctx).Delete(contactURL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = cl.R().SetContext(ctx).Get(contactURL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestContactsForeignOwner(t *testing.T) {
	defer FlushDB()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	owner := registerUser(t, ctx, "owner@example.com")
	other := registerUser(t, ctx, "other@example.com")

	resp, err := resty.New().SetAuthToken(owner.Token).R().
		SetContext(ctx).
		SetResult(&contactEnvelope{}).
		SetBody(map[string]interface{}{"name": "Ada Lovelace"}).
		Post(endpoint("/api/contacts"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())
	contactURL := endpoint(fmt.Sprintf("/api/contacts/%d", resp.Result().(*contactEnvelope).Data.Contact.ID))

	cl := resty.New().SetAuthToken(other.Token)
	resp, err = cl.R().SetContext(ctx).Get(contactURL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	resp, err = cl.R().SetContext(ctx).Delete(contactURL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}
