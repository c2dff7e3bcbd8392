package main

import (
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/service"
)

type demoTag struct {
	name  string
	color string
}

var demoTags = []demoTag{
	{"Business", "#3B82F6"},
	{"Client", "#10B981"},
	{"Friend", "#F59E0B"},
	{"Family", "#EF4444"},
	{"Partner", "#8B5CF6"},
	{"Colleague", "#06B6D4"},
	{"Designer", "#F97316"},
	{"Developer", "#84CC16"},
}

type demoContact struct {
	name, email, phone, company, jobTitle, website, notes string
	favorite                                             bool
	tags                                                 []string
}

func (c demoContact) fields() service.ContactFields {
	f := service.ContactFields{
		Name:       strPtr(c.name),
		Email:      strPtr(c.email),
		Phone:      strPtr(c.phone),
		Company:    strPtr(c.company),
		JobTitle:   strPtr(c.jobTitle),
		Notes:      strPtr(c.notes),
		IsFavorite: &c.favorite,
	}
	if c.website != "" {
		f.Website = strPtr(c.website)
	}
	return f
}

func strPtr(s string) *string { return &s }

var demoContacts = []demoContact{
	{
		name: "Sarah Johnson", email: "sarah.johnson@email.com", phone: "+1 (555) 123-4567",
		company: "Tech Solutions Inc", jobTitle: "Product Manager", website: "https://techsolutions.com",
		notes:    "Met at the tech conference. Very interested in our new product line.",
		favorite: true,
		tags:     []string{"Business", "Client"},
	},
	{
		name: "Michael Chen", email: "michael.chen@company.com", phone: "+1 (555) 987-6543",
		company: "Design Studio", jobTitle: "Creative Director", website: "https://designstudio.com",
		notes: "Collaborated on several projects. Excellent designer with great vision.",
		tags:  []string{"Business", "Partner"},
	},
	{
		name: "Emma Rodriguez", email: "emma.r@gmail.com", phone: "+1 (555) 456-7890",
		company: "Freelancer", jobTitle: "UI/UX Designer",
		notes: "Friend from college. Always available for design consultations.",
		tags:  []string{"Friend", "Designer"},
	},
	{
		name: "David Kim", email: "david.kim@startup.io", phone: "+1 (555) 321-9876",
		company: "StartupCo", jobTitle: "CTO", website: "https://startupco.io",
		notes:    "Tech entrepreneur. Looking for potential collaboration opportunities.",
		favorite: true,
		tags:     []string{"Business", "Partner", "Developer"},
	},
	{
		name: "Lisa Wang", email: "lisa.wang@corp.com", phone: "+1 (555) 654-3210",
		company: "Corporate Solutions", jobTitle: "Marketing Director", website: "https://corpsolutions.com",
		notes: "Potential client for our marketing automation tools.",
		tags:  []string{"Business", "Client"},
	},
	{
		name: "Alex Thompson", email: "alex.thompson@email.com", phone: "+1 (555) 789-0123",
		company: "Creative Agency", jobTitle: "Art Director",
		notes: "Colleague from previous job. Great for creative brainstorming sessions.",
		tags:  []string{"Colleague", "Designer"},
	},
	{
		name: "Maria Garcia", email: "maria.garcia@family.com", phone: "+1 (555) 234-5678",
		company: "Family Business", jobTitle: "Operations Manager",
		notes:    "Cousin who runs the family restaurant. Always supportive of my projects.",
		favorite: true,
		tags:     []string{"Family"},
	},
	{
		name: "James Wilson", email: "james.wilson@dev.com", phone: "+1 (555) 345-6789",
		company: "DevCorp", jobTitle: "Senior Developer", website: "https://devcorp.com",
		notes: "Met through a coding bootcamp. Great technical resource.",
		tags:  []string{"Friend", "Developer"},
	},
	{
		name: "Rachel Brown", email: "rachel.brown@consulting.com", phone: "+1 (555) 456-7890",
		company: "Business Consulting", jobTitle: "Senior Consultant", website: "https://businessconsulting.com",
		notes: "Business consultant with expertise in digital transformation.",
		tags:  []string{"Business", "Client"},
	},
	{
		name: "Tom Anderson", email: "tom.anderson@email.com", phone: "+1 (555) 567-8901",
		company: "Design Studio", jobTitle: "Graphic Designer",
		notes: "Freelance designer. Very creative and reliable.",
		tags:  []string{"Partner", "Designer"},
	},
}
