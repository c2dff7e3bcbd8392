package service

import (
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit far inside a signed 64-bit OFFSET.
	MaxPage = 1000000

	topTagsLimit = 10
)

// sortColumns is the only way a caller-supplied sort key reaches SQL text.
var sortColumns = map[string]string{
	"name":       "c.name",
	"email":      "c.email",
	"company":    "c.company",
	"created_at": "c.created_at",
	"updated_at": "c.updated_at",
}

const defaultSortKey = "created_at"

var contactColumns = []string{
	"c.id", "c.user_id", "c.name", "c.email", "c.phone", "c.company", "c.job_title",
	"c.avatar_url", "c.notes", "c.website", "c.address", "c.birthday", "c.is_favorite",
	"c.created_at", "c.updated_at",
}

type ListFilter struct {
	Page      int
	Limit     int
	Search    string
	Tag       string
	SortBy    string
	SortOrder string
}

func (f ListFilter) normalized() ListFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	f.SortBy, f.SortOrder = resolveSort(f.SortBy, f.SortOrder)
	return f
}

// beyondMaxPage reports whether the page lies past any offset the store will
// ask the database for; such pages are empty without a query.
func (f ListFilter) beyondMaxPage() bool {
	return f.Page > MaxPage
}

func (f ListFilter) offset() uint64 {
	if f.beyondMaxPage() {
		return uint64(MaxPage) * uint64(f.Limit)
	}
	return uint64(f.Page-1) * uint64(f.Limit)
}

// resolveSort maps the requested sort onto an allow-listed key and ASC/DESC.
// Unknown keys fall back to created_at, unknown directions to DESC.
func resolveSort(sortBy, sortOrder string) (string, string) {
	if _, ok := sortColumns[sortBy]; !ok {
		sortBy = defaultSortKey
	}
	if strings.EqualFold(sortOrder, "asc") {
		return sortBy, "ASC"
	}
	return sortBy, "DESC"
}

type contactQuery struct {
	userID uint64
	filter ListFilter
}

func newContactQuery(userID uint64, f ListFilter) contactQuery {
	return contactQuery{userID: userID, filter: f.normalized()}
}

func (q contactQuery) where(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	b = b.Where(squirrel.Eq{"c.user_id": q.userID})

	if q.filter.Search != "" {
		// Both sides go through the database's LOWER so they fold alike:
		// SQLite folds ASCII only, PostgreSQL follows the database locale.
		like := "%" + escapeLike(q.filter.Search) + "%"
		b = b.Where(squirrel.Or{
			squirrel.Expr(`LOWER(c.name) LIKE LOWER(?) ESCAPE '\'`, like),
			squirrel.Expr(`LOWER(c.email) LIKE LOWER(?) ESCAPE '\'`, like),
			squirrel.Expr(`LOWER(c.company) LIKE LOWER(?) ESCAPE '\'`, like),
			squirrel.Expr(`LOWER(c.notes) LIKE LOWER(?) ESCAPE '\'`, like),
		})
	}

	if q.filter.Tag != "" {
		b = b.Where(squirrel.Expr(`EXISTS (
			SELECT 1 FROM contact_tags ct
			JOIN tags t ON t.id = ct.tag_id
			WHERE ct.contact_id = c.id AND t.name = ?)`, q.filter.Tag))
	}

	return b
}

func (q contactQuery) page() (string, []interface{}, error) {
	dir := q.filter.SortOrder
	return q.where(squirrel.Select(contactColumns...).From("contacts c")).
		OrderBy(sortColumns[q.filter.SortBy]+" "+dir, "c.id "+dir).
		Limit(uint64(q.filter.Limit)).
		Offset(q.filter.offset()).
		ToSql()
}

func (q contactQuery) count() (string, []interface{}, error) {
	return q.where(squirrel.Select("COUNT(*)").From("contacts c")).ToSql()
}

func contactTagsQuery(contactIDs []uint64) (string, []interface{}, error) {
	return squirrel.
		Select("ct.contact_id", "t.id", "t.name", "t.color").
		From("contact_tags ct").
		Join("tags t ON t.id = ct.tag_id").
		Where(squirrel.Eq{"ct.contact_id": contactIDs}).
		OrderBy("t.name", "t.id").
		ToSql()
}

func statsQuery(userID uint64, month, week time.Time) (string, []interface{}, error) {
	return squirrel.
		Select("COUNT(*) AS total_contacts").
		Column("COUNT(CASE WHEN c.is_favorite = ? THEN 1 END) AS favorite_contacts", true).
		Column("COUNT(CASE WHEN c.created_at >= ? THEN 1 END) AS recent_contacts", month).
		Column("COUNT(CASE WHEN c.created_at >= ? THEN 1 END) AS this_week_contacts", week).
		From("contacts c").
		Where(squirrel.Eq{"c.user_id": userID}).
		ToSql()
}

func topTagsQuery(userID uint64) (string, []interface{}, error) {
	return squirrel.
		Select("t.name", "COUNT(ct.contact_id) AS contact_count").
		From("tags t").
		Join("contact_tags ct ON ct.tag_id = t.id").
		Join("contacts c ON c.id = ct.contact_id").
		Where(squirrel.Eq{"c.user_id": userID}).
		GroupBy("t.id", "t.name").
		OrderBy("contact_count DESC", "t.name ASC").
		Limit(topTagsLimit).
		ToSql()
}

var tagColumns = []string{
	"t.id", "t.name", "t.color", "t.description", "t.created_by", "t.created_at", "t.updated_at",
}

// tagVisibleTo matches tags the user added to the dictionary or has on a contact.
func tagVisibleTo(userID uint64) squirrel.Sqlizer {
	return squirrel.Or{
		squirrel.Eq{"t.created_by": userID},
		squirrel.Expr(`EXISTS (
			SELECT 1 FROM contact_tags ct
			JOIN contacts c ON c.id = ct.contact_id
			WHERE ct.tag_id = t.id AND c.user_id = ?)`, userID),
	}
}

func visibleTagsQuery(userID uint64) (string, []interface{}, error) {
	return squirrel.
		Select(tagColumns...).
		From("tags t").
		Where(tagVisibleTo(userID)).
		OrderBy("t.name", "t.id").
		ToSql()
}

func visibleTagCountQuery(userID, tagID uint64) (string, []interface{}, error) {
	return squirrel.
		Select("COUNT(*)").
		From("tags t").
		Where(squirrel.Eq{"t.id": tagID}).
		Where(tagVisibleTo(userID)).
		ToSql()
}

// foreignLinksQuery counts links from contacts of users other than userID.
func foreignLinksQuery(userID, tagID uint64) (string, []interface{}, error) {
	return squirrel.
		Select("COUNT(*)").
		From("contact_tags ct").
		Join("contacts c ON c.id = ct.contact_id").
		Where(squirrel.Eq{"ct.tag_id": tagID}).
		Where(squirrel.NotEq{"c.user_id": userID}).
		ToSql()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
