package transport

import (
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/db"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/models"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/service"
)

func userResp(u *db.User) models.UserResp {
	return models.UserResp{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		AvatarURL:  u.AvatarURL,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func contactResp(c *db.Contact) models.ContactResp {
	resp := models.ContactResp{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Company:    c.Company,
		JobTitle:   c.JobTitle,
		AvatarURL:  c.AvatarURL,
		Notes:      c.Notes,
		Website:    c.Website,
		Address:    c.Address,
		IsFavorite: c.IsFavorite,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		Tags:       make([]models.ContactTagResp, len(c.Tags)),
	}
	if c.Birthday != nil {
		b := c.Birthday.Format(models.DateLayout)
		resp.Birthday = &b
	}
	for i := range c.Tags {
		resp.Tags[i] = models.ContactTagResp{
			ID:    c.Tags[i].ID,
			Name:  c.Tags[i].Name,
			Color: c.Tags[i].Color,
		}
	}
	return resp
}

func contactListResp(res *service.ListResult) models.ContactListResp {
	resp := models.ContactListResp{
		Contacts: make([]models.ContactResp, len(res.Contacts)),
		Pagination: models.Pagination{
			Page:  res.Page,
			Limit: res.Limit,
			Total: res.Total,
			Pages: res.Pages,
		},
	}
	for i := range res.Contacts {
		resp.Contacts[i] = contactResp(&res.Contacts[i])
	}
	return resp
}

func statsResp(st *service.Stats) models.StatsResp {
	resp := models.StatsResp{
		Stats: models.ContactStats{
			TotalContacts:    st.TotalContacts,
			FavoriteContacts: st.FavoriteContacts,
			RecentContacts:   st.RecentContacts,
			ThisWeekContacts: st.ThisWeekContacts,
		},
		TopTags: make([]models.TagCountResp, len(st.TopTags)),
	}
	for i, tc := range st.TopTags {
		resp.TopTags[i] = models.TagCountResp{Name: tc.Name, ContactCount: tc.ContactCount}
	}
	return resp
}

func tagResp(t *db.Tag) models.TagResp {
	return models.TagResp{
		ID:          t.ID,
		Name:        t.Name,
		Color:       t.Color,
		Description: t.Description,
	}
}
