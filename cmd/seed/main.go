package main

import (
	"context"
	"encoding/json"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	contentModel "hotel/internal/domains/content/model"
	contentDto "hotel/internal/domains/content/model/dto"
	contentRepo "hotel/internal/domains/content/repository"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepo "hotel/internal/domains/room/repository"
	userModel "hotel/internal/domains/user/model"
	userDto "hotel/internal/domains/user/model/dto"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/logger"
	"hotel/shared/password"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type seedUser struct {
	email    string
	password string
	name     string
	role     string
}

var users = []seedUser{
	{email: "admin@hotel.com", password: "admin123", name: "Admin User", role: constant.RoleAdmin},
	{email: "staff@hotel.com", password: "staff123", name: "Staff User", role: constant.RoleStaff},
	{email: "guest@hotel.com", password: "guest123", name: "Guest User", role: constant.RoleGuest},
}

var roomAmenities = []string{
	"40-inch Samsung LED TV",
	"Electronic safe with charging facility",
	"Iron and ironing board",
	"Mini bar",
	"Non-smoking",
	"USB charging station",
	"Wired and wireless broadband Internet access",
	"Work desk",
}

var roomServices = []string{
	"Free-to-use smartphone (Free)",
	"Safe-deposit box (Free)",
	"Luggage storage (Free)",
	"Childcare ($60 / Once / Per Accommodation)",
	"Massage ($15 / Once / Per Guest)",
}

var rooms = []roomDto.CreateRoomRequest{
	{
		Slug:      "superior-room",
		Title:     "Superior Room",
		Subtitle:  "Great for business trip",
		Price:     decimal.NewFromInt(199),
		HeroImage: "https://images.unsplash.com/photo-1590490359683-658d3d23f972?auto=format&fit=crop&q=80&w=1920",
		Description: []string{
			"Great choice for a relaxing vacation for families with children or a group of friends.",
		},
		Specs: roomModel.Specs{Bed: "Twins Bed", Capacity: 3, Size: "30m²", View: "Sea view"},
	},
	{
		Slug:      "deluxe-room",
		Title:     "Deluxe Room",
		Subtitle:  "Great for business trip",
		Price:     decimal.NewFromInt(249),
		HeroImage: "https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?auto=format&fit=crop&q=80&w=1920",
		Description: []string{
			"Great choice for a relaxing vacation for families with children or a group of friends.",
		},
		Specs: roomModel.Specs{Bed: "King Bed", Capacity: 4, Size: "55m²", View: "Sea view"},
	},
	{
		Slug:      "signature-room",
		Title:     "Signature Room",
		Subtitle:  "Great for families",
		Price:     decimal.NewFromInt(299),
		HeroImage: "https://images.unsplash.com/photo-1540518614846-7eded433c457?auto=format&fit=crop&q=80&w=1920",
		Description: []string{
			"Great choice for a relaxing vacation for families with children or a group of friends.",
		},
		Specs: roomModel.Specs{Bed: "King Bed", Capacity: 5, Size: "70m²", View: "Sea view"},
	},
	{
		Slug:      "luxury-suite-room",
		Title:     "Luxury Suite Room",
		Subtitle:  "Great for families",
		Price:     decimal.NewFromInt(399),
		HeroImage: "https://images.unsplash.com/photo-1578683010236-d716f9a3f461?auto=format&fit=crop&q=80&w=1920",
		Description: []string{
			"Great choice for a relaxing vacation for families with children or a group of friends.",
		},
		Specs: roomModel.Specs{Bed: "King Bed", Capacity: 6, Size: "90m²", View: "Sea view"},
	},
}

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg.Server.Env)

	db := postgres.New(cfg)
	tracer := otel.New(cfg)
	ctx := context.Background()

	if err := seedUsers(ctx, userRepo.New(db, tracer)); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed users")
	}

	if err := seedRooms(ctx, roomRepo.New(db, tracer)); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed rooms")
	}

	if err := seedSiteSettings(ctx, contentRepo.New(db, tracer)); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed site settings")
	}

	log.Info().Msg("Seeding finished")
}

func seedUsers(ctx context.Context, repo userRepo.User) error {
	for _, u := range users {
		exist, err := repo.Exist(ctx, shared.FilterByField(userModel.FieldEmail, u.email, userModel.TableName))
		if err != nil {
			return err
		}

		if exist {
			log.Info().Str("email", u.email).Msg("User already exists, skipping")
			continue
		}

		hashed, err := password.Hash(u.password)
		if err != nil {
			return err
		}

		user := userDto.NewUser(constant.ContextSystem, u.email, u.name, nil, &hashed, u.role)
		if err = repo.Insert(ctx, user); err != nil {
			return err
		}

		log.Info().Str("email", u.email).Str("role", u.role).Msg("User created")
	}

	return nil
}

func seedRooms(ctx context.Context, repo roomRepo.Room) error {
	for _, r := range rooms {
		exist, err := repo.Exist(ctx, shared.FilterByField(roomModel.FieldSlug, r.Slug, roomModel.TableName))
		if err != nil {
			return err
		}

		if exist {
			log.Info().Str("slug", r.Slug).Msg("Room already exists, skipping")
			continue
		}

		r.Amenities = roomAmenities
		r.Services = roomServices

		if err = repo.Insert(ctx, r.ToModel(constant.ContextSystem)); err != nil {
			return err
		}

		log.Info().Str("slug", r.Slug).Msg("Room created")
	}

	return nil
}

func seedSiteSettings(ctx context.Context, repo contentRepo.Content) error {
	visible := true

	headerItems, err := rawItems([]map[string]any{
		{"label": "Home", "url": "/", "order": 1},
		{"label": "Our Rooms", "url": "/rooms", "order": 2},
		{"label": "About Us", "url": "/about", "order": 3},
		{"label": "Blog", "url": "/blog", "order": 4},
		{"label": "Explore", "url": "/explore", "order": 5},
		{"label": "Contact", "url": "/contact", "order": 6},
	})
	if err != nil {
		return err
	}

	footerItems, err := rawItems([]map[string]any{
		{"section": "address", "title": "OUR ADDRESS", "content": "Hoteller Beach Hotel\n45 Santorini Station\nThira 150-0042"},
		{"section": "reservation", "title": "RESERVATION", "content": "Tel.: +41 (0)54 2344 00\nrevs@hotellerbeach.com"},
		{"section": "newsletter", "title": "NEWSLETTER", "content": "Subscribe to our newsletter"},
		{"section": "copyright", "content": "© Copyright Hotel Beach"},
	})
	if err != nil {
		return err
	}

	req := contentDto.UpsertPageRequest{
		PageName: contentModel.PageSiteSettings,
		Sections: []contentModel.Section{
			{SectionID: "header", SectionName: "Header Settings", Title: "HOTEL BEACH", Items: headerItems, IsVisible: &visible, Order: 1},
			{SectionID: "footer", SectionName: "Footer Settings", Items: footerItems, IsVisible: &visible, Order: 2},
		},
		Metadata: contentModel.PageMeta{
			PageTitle:       "Site Settings",
			PageDescription: "Global header and footer settings",
			Keywords:        []string{"header", "footer", "navigation", "settings"},
		},
	}

	if err = req.Validate(); err != nil {
		return err
	}

	// existing settings are left untouched
	err = repo.Upsert(ctx, req.ToModel(constant.ContextSystem), []string{contentModel.FieldPageName})
	if err != nil {
		return err
	}

	log.Info().Str("page", contentModel.PageSiteSettings).Msg("Site settings seeded")

	return nil
}

func rawItems(items []map[string]any) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(items))

	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}

		out = append(out, raw)
	}

	return out, nil
}
