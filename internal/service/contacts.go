package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/db"
)

// ContactFields carries optional contact columns. A nil field is left
// untouched on update and stored as NULL (or false) on create.
type ContactFields struct {
	Name       *string
	Email      *string
	Phone      *string
	Company    *string
	JobTitle   *string
	AvatarURL  *string
	Notes      *string
	Website    *string
	Address    *string
	Birthday   *time.Time
	IsFavorite *bool
}

// columns lists the non-nil fields keyed by column name.
func (f ContactFields) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if f.Name != nil {
		cols["name"] = *f.Name
	}
	if f.Email != nil {
		cols["email"] = *f.Email
	}
	if f.Phone != nil {
		cols["phone"] = *f.Phone
	}
	if f.Company != nil {
		cols["company"] = *f.Company
	}
	if f.JobTitle != nil {
		cols["job_title"] = *f.JobTitle
	}
	if f.AvatarURL != nil {
		cols["avatar_url"] = *f.AvatarURL
	}
	if f.Notes != nil {
		cols["notes"] = *f.Notes
	}
	if f.Website != nil {
		cols["website"] = *f.Website
	}
	if f.Address != nil {
		cols["address"] = *f.Address
	}
	if f.Birthday != nil {
		cols["birthday"] = *f.Birthday
	}
	if f.IsFavorite != nil {
		cols["is_favorite"] = *f.IsFavorite
	}
	return cols
}

type ListResult struct {
	Contacts []db.Contact
	Page     int
	Limit    int
	Total    int64
	Pages    int64
}

type Stats struct {
	TotalContacts    int64      `gorm:"column:total_contacts"`
	FavoriteContacts int64      `gorm:"column:favorite_contacts"`
	RecentContacts   int64      `gorm:"column:recent_contacts"`
	ThisWeekContacts int64      `gorm:"column:this_week_contacts"`
	TopTags          []TagCount `gorm:"-"`
}

type TagCount struct {
	Name         string `gorm:"column:name"`
	ContactCount int64  `gorm:"column:contact_count"`
}

type contactTagRow struct {
	ContactID uint64
	ID        uint64
	Name      string
	Color     *string
}

// Contacts owns contact rows and their tag links. Every lookup is scoped by
// the owning user; a foreign contact is indistinguishable from a missing one.
type Contacts struct {
	db       *gorm.DB
	resolver *TagResolver
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewContacts(gdb *gorm.DB, resolver *TagResolver, l *zap.SugaredLogger) *Contacts {
	return &Contacts{
		db:       gdb,
		resolver: resolver,
		logger:   l,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *Contacts) List(ctx context.Context, userID uint64, filter ListFilter) (*ListResult, error) {
	q := newContactQuery(userID, filter)
	gdb := s.db.WithContext(ctx)

	contacts := make([]db.Contact, 0)
	if !q.filter.beyondMaxPage() {
		sql, args, err := q.page()
		if err != nil {
			return nil, errors.Wrap(err, "build sql")
		}
		if res := gdb.Raw(sql, args...).Scan(&contacts); res.Error != nil {
			return nil, errors.Wrap(res.Error, "scan contacts")
		}
	}

	sql, args, err := q.count()
	if err != nil {
		return nil, errors.Wrap(err, "build count sql")
	}
	var total int64
	if res := gdb.Raw(sql, args...).Scan(&total); res.Error != nil {
		return nil, errors.Wrap(res.Error, "count contacts")
	}

	if err := s.hydrate(gdb, contacts); err != nil {
		return nil, err
	}

	limit := int64(q.filter.Limit)
	return &ListResult{
		Contacts: contacts,
		Page:     q.filter.Page,
		Limit:    q.filter.Limit,
		Total:    total,
		Pages:    (total + limit - 1) / limit,
	}, nil
}

func (s *Contacts) Get(ctx context.Context, userID, contactID uint64) (*db.Contact, error) {
	gdb := s.db.WithContext(ctx)

	model := db.Contact{}
	res := gdb.Where("id = ? AND user_id = ?", contactID, userID).Take(&model)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, errors.Wrap(res.Error, "get contact")
	}

	contacts := []db.Contact{model}
	if err := s.hydrate(gdb, contacts); err != nil {
		return nil, err
	}
	return &contacts[0], nil
}

func (s *Contacts) Create(ctx context.Context, userID uint64, fields ContactFields, tagNames []string) (*db.Contact, error) {
	now := s.now()
	model := db.Contact{
		GormForkedModel: db.GormForkedModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    userID,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Company:   fields.Company,
		JobTitle:  fields.JobTitle,
		AvatarURL: fields.AvatarURL,
		Notes:     fields.Notes,
		Website:   fields.Website,
		Address:   fields.Address,
		Birthday:  fields.Birthday,
	}
	if fields.Name != nil {
		model.Name = *fields.Name
	}
	if fields.IsFavorite != nil {
		model.IsFavorite = *fields.IsFavorite
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if res := tx.Omit(clause.Associations).Create(&model); res.Error != nil {
			return errors.Wrap(res.Error, "insert contact")
		}
		return s.replaceTags(tx, model.ID, tagNames)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debugw("contact created", "user_id", userID, "contact_id", model.ID, "tags", len(tagNames))
	return s.Get(ctx, userID, model.ID)
}

// Update applies the non-nil fields. A nil tagNames keeps the current links;
// a non-nil one, empty included, replaces them.
func (s *Contacts) Update(ctx context.Context, userID, contactID uint64, fields ContactFields, tagNames *[]string) (*db.Contact, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing := db.Contact{}
		res := tx.Select("id").Where("id = ? AND user_id = ?", contactID, userID).Take(&existing)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return ErrContactNotFound
			}
			return errors.Wrap(res.Error, "check contact owner")
		}

		cols := fields.columns()
		if len(cols) == 0 && tagNames == nil {
			return nil
		}
		cols["updated_at"] = s.now()

		res = tx.Model(&db.Contact{}).
			Where("id = ? AND user_id = ?", contactID, userID).
			UpdateColumns(cols)
		if res.Error != nil {
			return errors.Wrap(res.Error, "update contact")
		}

		if tagNames == nil {
			return nil
		}
		return s.replaceTags(tx, contactID, *tagNames)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, contactID)
}

func (s *Contacts) Delete(ctx context.Context, userID, contactID uint64) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", contactID, userID).
		Delete(&db.Contact{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete contact")
	}
	if res.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (s *Contacts) Stats(ctx context.Context, userID uint64) (*Stats, error) {
	gdb := s.db.WithContext(ctx)

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sql, args, err := statsQuery(userID, today.AddDate(0, 0, -30), today.AddDate(0, 0, -7))
	if err != nil {
		return nil, errors.Wrap(err, "build stats sql")
	}
	stats := Stats{}
	if res := gdb.Raw(sql, args...).Scan(&stats); res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan stats")
	}

	sql, args, err = topTagsQuery(userID)
	if err != nil {
		return nil, errors.Wrap(err, "build top tags sql")
	}
	stats.TopTags = make([]TagCount, 0, topTagsLimit)
	if res := gdb.Raw(sql, args...).Scan(&stats.TopTags); res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan top tags")
	}

	return &stats, nil
}

func (s *Contacts) replaceTags(tx *gorm.DB, contactID uint64, tagNames []string) error {
	ids, err := s.resolver.ResolveAll(tx, tagNames)
	if err != nil {
		return errors.Wrap(err, "resolve tags")
	}
	return s.resolver.Relink(tx, contactID, ids)
}

// hydrate attaches tags to each contact; contacts without links get an empty slice.
func (s *Contacts) hydrate(gdb *gorm.DB, contacts []db.Contact) error {
	if len(contacts) == 0 {
		return nil
	}

	ids := make([]uint64, len(contacts))
	byID := make(map[uint64]int, len(contacts))
	for i := range contacts {
		ids[i] = contacts[i].ID
		byID[contacts[i].ID] = i
		contacts[i].Tags = make([]db.Tag, 0)
	}

	sql, args, err := contactTagsQuery(ids)
	if err != nil {
		return errors.Wrap(err, "build tags sql")
	}
	rows := make([]contactTagRow, 0)
	if res := gdb.Raw(sql, args...).Scan(&rows); res.Error != nil {
		return errors.Wrap(res.Error, "scan contact tags")
	}

	for _, row := range rows {
		i, ok := byID[row.ContactID]
		if !ok {
			continue
		}
		contacts[i].Tags = append(contacts[i].Tags, db.Tag{
			GormForkedModel: db.GormForkedModel{ID: row.ID},
			Name:            row.Name,
			Color:           row.Color,
		})
	}
	return nil
}
