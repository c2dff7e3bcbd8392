package service

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/db"
)

func TestTagResolver(t *testing.T) {
	t.Run("resolve is idempotent within a transaction", func(t *testing.T) {
		env := newTestEnv(t)
		resolver := NewTagResolver(env.logger)

		err := env.db.Transaction(func(tx *gorm.DB) error {
			first, err := resolver.Resolve(tx, "Engineer")
			require.NoError(t, err)
			second, err := resolver.Resolve(tx, "Engineer")
			require.NoError(t, err)
			assert.Equal(t, first, second)

			other, err := resolver.Resolve(tx, "engineer")
			require.NoError(t, err)
			assert.NotEqual(t, first, other, "names match exactly")
			return nil
		})
		require.NoError(t, err)

		var n int64
		require.NoError(t, env.db.Model(&db.Tag{}).Count(&n).Error)
		assert.Equal(t, int64(2), n)
	})

	t.Run("resolve all keeps first seen order", func(t *testing.T) {
		env := newTestEnv(t)
		resolver := NewTagResolver(env.logger)

		var ids []uint64
		err := env.db.Transaction(func(tx *gorm.DB) error {
			var err error
			ids, err = resolver.ResolveAll(tx, []string{"b", "a", "b", "c", "a"})
			return err
		})
		require.NoError(t, err)
		require.Len(t, ids, 3)

		tags := make([]db.Tag, 0)
		require.NoError(t, env.db.Where("id IN ?", ids).Find(&tags).Error)
		byID := map[uint64]string{}
		for _, tag := range tags {
			byID[tag.ID] = tag.Name
		}
		assert.Equal(t, []string{"b", "a", "c"}, []string{byID[ids[0]], byID[ids[1]], byID[ids[2]]})
	})

	t.Run("relink replaces and dedupes", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.seedUser(t, "ada@example.com")
		contact := env.seedContact(t, user.ID, "Ada Lovelace", "Engineer", "Math")
		resolver := NewTagResolver(env.logger)

		err := env.db.Transaction(func(tx *gorm.DB) error {
			poet, err := resolver.Resolve(tx, "Poet")
			if err != nil {
				return err
			}
			return resolver.Relink(tx, contact.ID, []uint64{poet, poet})
		})
		require.NoError(t, err)

		got, err := env.contacts.Get(env.ctx, user.ID, contact.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Poet"}, tagNames(got))
		assert.Equal(t, int64(1), env.linkCount(t, contact.ID))
	})

	t.Run("duplicate key on insert falls back to select", func(t *testing.T) {
		env := newTestEnv(t)
		resolver := NewTagResolver(env.logger)

		var existing uint64
		require.NoError(t, env.db.Transaction(func(tx *gorm.DB) error {
			var err error
			existing, err = resolver.Resolve(tx, "Engineer")
			return err
		}))

		err := env.db.Callback().Create().Before("gorm:create").Register("test:duplicate_tag", func(d *gorm.DB) {
			if d.Statement.Table == "tags" {
				_ = d.AddError(gorm.ErrDuplicatedKey)
			}
		})
		require.NoError(t, err)

		var got uint64
		require.NoError(t, env.db.Transaction(func(tx *gorm.DB) error {
			var err error
			got, err = resolver.Resolve(tx, "Engineer")
			return err
		}))
		assert.Equal(t, existing, got)

		var n int64
		require.NoError(t, env.db.Model(&db.Tag{}).Count(&n).Error)
		assert.Equal(t, int64(1), n)
	})
}

func TestTags(t *testing.T) {
	t.Run("create list update delete", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.seedUser(t, "ada@example.com")
		color := "#10B981"
		desc := "Paying customers"

		client, err := env.tags.Create(env.ctx, user.ID, "Client", &color, &desc)
		require.NoError(t, err)
		require.NotNil(t, client.CreatedBy)
		assert.Equal(t, user.ID, *client.CreatedBy)
		_, err = env.tags.Create(env.ctx, user.ID, "Business", nil, nil)
		require.NoError(t, err)

		tags, err := env.tags.List(env.ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "Business", tags[0].Name)
		assert.Equal(t, "Client", tags[1].Name)
		assert.Equal(t, &color, tags[1].Color)
		assert.Equal(t, &desc, tags[1].Description)

		newColor := "#F59E0B"
		updated, err := env.tags.Update(env.ctx, user.ID, client.ID, TagFields{Name: strPtr("Customer"), Color: &newColor})
		require.NoError(t, err)
		assert.Equal(t, "Customer", updated.Name)
		assert.Equal(t, &newColor, updated.Color)
		assert.Equal(t, &desc, updated.Description)

		require.NoError(t, env.tags.Delete(env.ctx, user.ID, client.ID))
		err = env.tags.Delete(env.ctx, user.ID, client.ID)
		assert.True(t, errors.Is(err, ErrTagNotFound))
	})

	t.Run("names are unique", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.seedUser(t, "ada@example.com")
		other := env.seedUser(t, "other@example.com")

		_, err := env.tags.Create(env.ctx, user.ID, "Client", nil, nil)
		require.NoError(t, err)
		_, err = env.tags.Create(env.ctx, other.ID, "Client", nil, nil)
		assert.True(t, errors.Is(err, ErrTagExists))
		assert.True(t, IsConflict(err))

		friend, err := env.tags.Create(env.ctx, user.ID, "Friend", nil, nil)
		require.NoError(t, err)
		_, err = env.tags.Update(env.ctx, user.ID, friend.ID, TagFields{Name: strPtr("Client")})
		assert.True(t, errors.Is(err, ErrTagExists))
	})

	t.Run("update missing", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.seedUser(t, "ada@example.com")

		_, err := env.tags.Update(env.ctx, user.ID, 404, TagFields{Name: strPtr("x")})
		assert.True(t, errors.Is(err, ErrTagNotFound))
		assert.True(t, IsNotFound(err))
	})

	t.Run("deleting a tag keeps its contacts", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.seedUser(t, "ada@example.com")
		contact := env.seedContact(t, user.ID, "Ada Lovelace", "Engineer", "Math")

		require.NoError(t, env.tags.Delete(env.ctx, user.ID, contact.Tags[0].ID))

		got, err := env.contacts.Get(env.ctx, user.ID, contact.ID)
		require.NoError(t, err)
		assert.Len(t, got.Tags, 1)
	})
}

func TestTagsAcrossUsers(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner@example.com")
	other := env.seedUser(t, "other@example.com")
	contact := env.seedContact(t, owner.ID, "Ada Lovelace", "Engineer")
	engineer := contact.Tags[0].ID

	private, err := env.tags.Create(env.ctx, owner.ID, "Private", nil, nil)
	require.NoError(t, err)

	t.Run("list is scoped to the caller", func(t *testing.T) {
		tags, err := env.tags.List(env.ctx, owner.ID)
		require.NoError(t, err)
		assert.Len(t, tags, 2)

		tags, err = env.tags.List(env.ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, tags)
	})

	t.Run("tags the caller cannot see are not found", func(t *testing.T) {
		_, err := env.tags.Update(env.ctx, other.ID, engineer, TagFields{Name: strPtr("Hacked")})
		assert.True(t, errors.Is(err, ErrTagNotFound))
		err = env.tags.Delete(env.ctx, other.ID, engineer)
		assert.True(t, errors.Is(err, ErrTagNotFound))
		err = env.tags.Delete(env.ctx, other.ID, private.ID)
		assert.True(t, errors.Is(err, ErrTagNotFound))
	})

	t.Run("tags on other users' contacts cannot be changed", func(t *testing.T) {
		env.seedContact(t, other.ID, "Grace Hopper", "Engineer")

		tags, err := env.tags.List(env.ctx, other.ID)
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "Engineer", tags[0].Name)

		_, err = env.tags.Update(env.ctx, other.ID, engineer, TagFields{Name: strPtr("Hacked")})
		assert.True(t, errors.Is(err, ErrTagShared))
		assert.True(t, IsConflict(err))
		err = env.tags.Delete(env.ctx, other.ID, engineer)
		assert.True(t, errors.Is(err, ErrTagShared))
		err = env.tags.Delete(env.ctx, owner.ID, engineer)
		assert.True(t, errors.Is(err, ErrTagShared))

		got, err := env.contacts.Get(env.ctx, owner.ID, contact.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Engineer"}, tagNames(got))
	})
}
