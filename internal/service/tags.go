package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/db"
)

// TagResolver maps tag names to ids and rewrites a contact's links.
// Every method runs on the caller's transaction.
type TagResolver struct {
	logger *zap.SugaredLogger
}

func NewTagResolver(l *zap.SugaredLogger) *TagResolver {
	return &TagResolver{logger: l}
}

// Resolve returns the id of the tag called name, creating it when absent.
// The insert is a no-op on a name conflict, so concurrent resolvers of the
// same new name converge on one row instead of failing.
func (r *TagResolver) Resolve(tx *gorm.DB, name string) (uint64, error) {
	model := db.Tag{Name: name}
	res := tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Omit(clause.Associations).
		Create(&model)
	if res.Error != nil && !errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return 0, errors.Wrapf(res.Error, "insert tag %q", name)
	}
	if res.Error == nil && res.RowsAffected == 1 && model.ID != 0 {
		return model.ID, nil
	}

	existing := db.Tag{}
	res = tx.Select("id").Where("name = ?", name).Take(&existing)
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "select tag %q", name)
	}
	r.logger.Debugw("reused existing tag", "tag", name, "tag_id", existing.ID)
	return existing.ID, nil
}

// ResolveAll resolves each distinct name once, keeping first-seen order.
func (r *TagResolver) ResolveAll(tx *gorm.DB, names []string) ([]uint64, error) {
	seen := make(map[string]struct{}, len(names))
	ids := make([]uint64, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		id, err := r.Resolve(tx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Relink replaces every link of contactID with one link per distinct tag id.
func (r *TagResolver) Relink(tx *gorm.DB, contactID uint64, tagIDs []uint64) error {
	res := tx.Where("contact_id = ?", contactID).Delete(&db.ContactTag{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete contact tags")
	}

	links := make([]db.ContactTag, 0, len(tagIDs))
	seen := make(map[uint64]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		links = append(links, db.ContactTag{ContactID: contactID, TagID: id})
	}
	if len(links) == 0 {
		return nil
	}

	res = tx.Omit(clause.Associations).Create(&links)
	if res.Error != nil {
		return errors.Wrap(res.Error, "insert contact tags")
	}
	return nil
}

// Tags manages the shared tag dictionary as seen by one user: the tags they
// added and the tags on their contacts. A tag on another user's contact can be
// read through the contact but never renamed or deleted.
type Tags struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewTags(gdb *gorm.DB, l *zap.SugaredLogger) *Tags {
	return &Tags{
		db:     gdb,
		logger: l,
	}
}

type TagFields struct {
	Name        *string
	Color       *string
	Description *string
}

func (s *Tags) List(ctx context.Context, userID uint64) ([]db.Tag, error) {
	sql, args, err := visibleTagsQuery(userID)
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	tags := make([]db.Tag, 0)
	if res := s.db.WithContext(ctx).Raw(sql, args...).Scan(&tags); res.Error != nil {
		return nil, errors.Wrap(res.Error, "list tags")
	}
	return tags, nil
}

func (s *Tags) Create(ctx context.Context, userID uint64, name string, color, description *string) (*db.Tag, error) {
	model := db.Tag{
		Name:        name,
		Color:       color,
		Description: description,
		CreatedBy:   &userID,
	}

	res := s.db.WithContext(ctx).Omit(clause.Associations).Create(&model)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrTagExists
		}
		return nil, errors.Wrap(res.Error, "create tag")
	}

	return &model, nil
}

func (s *Tags) Update(ctx context.Context, userID, tagID uint64, fields TagFields) (*db.Tag, error) {
	updates := map[string]interface{}{}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Color != nil {
		updates["color"] = *fields.Color
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}

	model := db.Tag{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkOwned(tx, userID, tagID); err != nil {
			return err
		}
		if res := tx.Where("id = ?", tagID).Take(&model); res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return ErrTagNotFound
			}
			return errors.Wrap(res.Error, "get tag")
		}
		if len(updates) == 0 {
			return nil
		}

		res := tx.Model(&model).Omit(clause.Associations).Updates(updates)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return ErrTagExists
			}
			return errors.Wrap(res.Error, "update tag")
		}
		return errors.Wrap(tx.Where("id = ?", tagID).Take(&model).Error, "reload tag")
	})
	if err != nil {
		return nil, err
	}

	return &model, nil
}

// Delete removes the tag; its links go with it, the contacts stay.
func (s *Tags) Delete(ctx context.Context, userID, tagID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkOwned(tx, userID, tagID); err != nil {
			return err
		}

		res := tx.Where("id = ?", tagID).Delete(&db.Tag{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete tag")
		}
		if res.RowsAffected == 0 {
			return ErrTagNotFound
		}
		s.logger.Debugw("tag deleted", "user_id", userID, "tag_id", tagID)
		return nil
	})
}

// checkOwned fails with ErrTagNotFound when the user cannot see the tag and
// with ErrTagShared when another user's contact carries it.
func (s *Tags) checkOwned(tx *gorm.DB, userID, tagID uint64) error {
	sql, args, err := visibleTagCountQuery(userID, tagID)
	if err != nil {
		return errors.Wrap(err, "build sql")
	}
	var visible int64
	if res := tx.Raw(sql, args...).Scan(&visible); res.Error != nil {
		return errors.Wrap(res.Error, "check tag visibility")
	}
	if visible == 0 {
		return ErrTagNotFound
	}

	sql, args, err = foreignLinksQuery(userID, tagID)
	if err != nil {
		return errors.Wrap(err, "build sql")
	}
	var foreign int64
	if res := tx.Raw(sql, args...).Scan(&foreign); res.Error != nil {
		return errors.Wrap(res.Error, "count foreign links")
	}
	if foreign > 0 {
		return ErrTagShared
	}
	return nil
}
