package fakeapi

import "time"

func (s *Server) seedOptions() {
	s.categories = []relation{
		{1, "News"},
		{2, "Agriculture"},
		{3, "Mapping"},
		{4, "Technology"},
		{5, "Events"},
	}
	s.productServices = []relation{
		{1, "Spraying Drone"},
		{2, "Mapping Drone"},
		{3, "Drone Training"},
		{4, "Aerial Survey Service"},
	}
	s.industries = []relation{
		{1, "Agriculture"},
		{2, "Mining"},
		{3, "Forestry"},
		{4, "Infrastructure"},
	}
}

func str(s string) *string { return &s }

func (s *Server) seedRecords() {
	now := timestamp(time.Now())

	s.articles = []article{
		{
			ID:         s.id(),
			Title:      "Precision spraying in West Java",
			Content:    "Our **spraying fleet** covered 400 ha of rice fields this season.",
			Author:     "Beehive Team",
			Categories: []relation{s.categories[0], s.categories[1]},
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         s.id(),
			Title:      "Mapping 101",
			Content:    "How photogrammetry turns overlapping photos into orthomosaics.",
			Author:     "Beehive Team",
			Categories: []relation{s.categories[2]},
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}

	s.careers = []career{
		{
			ID:               s.id(),
			Title:            "Drone Pilot",
			Qualifications:   "Valid remote pilot certificate.",
			Responsibilities: str("Fly survey and spraying missions."),
			Location:         "Bandung",
			WorkType:         "WFO",
			Deadline:         time.Now().AddDate(0, 1, 0).Format(time.DateOnly) + " 00:00:00",
		},
		{
			ID:             s.id(),
			Title:          "Backend Engineer",
			Qualifications: "Three years building HTTP services.",
			Benefits:       str("Flexible hours."),
			Location:       "Jakarta",
			WorkType:       "Hybrid",
			Deadline:       time.Now().AddDate(0, 2, 0).Format(time.DateOnly) + " 00:00:00",
		},
	}

	s.projects = []project{
		{
			ID:               s.id(),
			Title:            "Palm plantation survey",
			Description:      "Canopy mapping across 1,200 ha.",
			Location:         "Riau",
			Goal:             "Tree count and health index.",
			ProductServiceID: 4,
			IndustryID:       1,
			ProductService:   &s.productServices[3],
			Industry:         &s.industries[0],
		},
	}

	for _, t := range []string{"Hornet S1", "Hornet S2", "Queen M1"} {
		s.products = append(s.products, product{
			ID:             s.id(),
			Title:          t,
			Type:           str("Multirotor"),
			Images:         []string{},
			IncludeItems:   []string{"Drone", "Remote controller", "2 batteries"},
			PackageOptions: []packageOption{{Name: "Basic", Price: 85_000_000}},
			Financing:      []string{"Cash", "Installment"},
			BasePrice:      85_000_000,
		})
	}
}
