package database

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/localboost/localboost-backend/pkg/utils"
)

type seedBusiness struct {
	name        string
	description string
	category    string
	address     string
	phone       string
	email       string
	website     string
	imageURL    string
	hours       string
}

type seedReview struct {
	business int // index into seed businesses
	user     int // index into seed users
	rating   int
	title    string
	content  string
}

type seedDeal struct {
	business      int
	title         string
	description   string
	discountType  string
	discountValue *float64
	code          string
	days          int
	terms         string
}

func f(v float64) *float64 { return &v }

var seedBusinesses = []seedBusiness{
	{
		name:        "The Rustic Table",
		description: "Farm-to-table restaurant featuring locally sourced ingredients and seasonal menus. Our chefs create memorable dining experiences with fresh, organic produce from nearby farms.",
		category:    "food",
		address:     "123 Main Street, Downtown",
		phone:       "(555) 123-4567",
		email:       "hello@rustictable.com",
		website:     "https://rustictable.com",
		imageURL:    "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=800",
		hours:       `{"mon": "11:00-21:00", "tue": "11:00-21:00", "wed": "11:00-21:00", "thu": "11:00-22:00", "fri": "11:00-23:00", "sat": "10:00-23:00", "sun": "10:00-20:00"}`,
	},
	{
		name:        "Craft & Co",
		description: "Artisan goods and handcrafted items from local makers. Discover unique gifts, home decor, and accessories that tell a story.",
		category:    "retail",
		address:     "456 Oak Avenue, Arts District",
		phone:       "(555) 234-5678",
		email:       "shop@craftandco.com",
		website:     "https://craftandco.com",
		imageURL:    "https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=800",
		hours:       `{"mon": "10:00-18:00", "tue": "10:00-18:00", "wed": "10:00-18:00", "thu": "10:00-20:00", "fri": "10:00-20:00", "sat": "09:00-20:00", "sun": "11:00-17:00"}`,
	},
	{
		name:        "Bloom Beauty Studio",
		description: "Full-service beauty salon offering haircuts, coloring, skincare, and spa treatments. Our experienced stylists help you look and feel your best.",
		category:    "services",
		address:     "789 Elm Street, Midtown",
		phone:       "(555) 345-6789",
		email:       "book@bloombeauty.com",
		website:     "https://bloombeauty.com",
		imageURL:    "https://images.unsplash.com/photo-1560066984-138dadb4c035?w=800",
		hours:       `{"mon": "closed", "tue": "09:00-19:00", "wed": "09:00-19:00", "thu": "09:00-20:00", "fri": "09:00-20:00", "sat": "08:00-18:00", "sun": "10:00-16:00"}`,
	},
	{
		name:        "Pixel Arcade & Gaming",
		description: "Retro arcade meets modern gaming lounge. Play classic pinball machines, vintage video games, and the latest VR experiences.",
		category:    "entertainment",
		address:     "321 Game Lane, Entertainment District",
		phone:       "(555) 456-7890",
		email:       "play@pixelarcade.com",
		website:     "https://pixelarcade.com",
		imageURL:    "https://images.unsplash.com/photo-1511882150382-421056c89033?w=800",
		hours:       `{"mon": "14:00-23:00", "tue": "14:00-23:00", "wed": "14:00-23:00", "thu": "14:00-24:00", "fri": "12:00-02:00", "sat": "10:00-02:00", "sun": "10:00-22:00"}`,
	},
	{
		name:        "Zenith Yoga & Wellness",
		description: "Find your balance at our tranquil yoga studio. We offer classes for all levels, meditation sessions, and holistic wellness programs.",
		category:    "health",
		address:     "567 Peaceful Way, Wellness Center",
		phone:       "(555) 567-8901",
		email:       "namaste@zenithyoga.com",
		website:     "https://zenithyoga.com",
		imageURL:    "https://images.unsplash.com/photo-1545205597-3d9d02c29597?w=800",
		hours:       `{"mon": "06:00-21:00", "tue": "06:00-21:00", "wed": "06:00-21:00", "thu": "06:00-21:00", "fri": "06:00-20:00", "sat": "07:00-18:00", "sun": "08:00-16:00"}`,
	},
	{
		name:        "The Daily Grind",
		description: "Specialty coffee roastery and cafe. We source beans ethically and roast in-house. Enjoy expertly crafted espresso drinks and fresh pastries.",
		category:    "food",
		address:     "890 Coffee Court, Riverside",
		phone:       "(555) 678-9012",
		email:       "brew@dailygrind.com",
		website:     "https://dailygrind.com",
		imageURL:    "https://images.unsplash.com/photo-1501339847302-ac426a4a7cbb?w=800",
		hours:       `{"mon": "06:00-18:00", "tue": "06:00-18:00", "wed": "06:00-18:00", "thu": "06:00-18:00", "fri": "06:00-19:00", "sat": "07:00-19:00", "sun": "07:00-17:00"}`,
	},
	{
		name:        "Green Thumb Garden Center",
		description: "Everything for your garden and outdoor space. Plants, tools, soil, and expert advice from our passionate horticulturists.",
		category:    "retail",
		address:     "234 Botanical Blvd, Garden District",
		phone:       "(555) 789-0123",
		email:       "grow@greenthumb.com",
		website:     "https://greenthumb.com",
		imageURL:    "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=800",
		hours:       `{"mon": "08:00-18:00", "tue": "08:00-18:00", "wed": "08:00-18:00", "thu": "08:00-18:00", "fri": "08:00-18:00", "sat": "07:00-19:00", "sun": "09:00-17:00"}`,
	},
	{
		name:        "Fix-It Tech Solutions",
		description: "Computer repair, phone screen replacement, and IT support for homes and small businesses. Fast, reliable, and affordable.",
		category:    "services",
		address:     "456 Tech Plaza, Innovation Hub",
		phone:       "(555) 890-1234",
		email:       "help@fixittech.com",
		website:     "https://fixittech.com",
		imageURL:    "https://images.unsplash.com/photo-1597872200969-2b65d56bd16b?w=800",
		hours:       `{"mon": "09:00-18:00", "tue": "09:00-18:00", "wed": "09:00-18:00", "thu": "09:00-18:00", "fri": "09:00-17:00", "sat": "10:00-16:00", "sun": "closed"}`,
	},
	{
		name:        "Moonlight Cinema",
		description: "Indie film theater showcasing independent and international cinema. Comfortable seating, craft beer, and gourmet snacks.",
		category:    "entertainment",
		address:     "789 Film Row, Cultural Center",
		phone:       "(555) 901-2345",
		email:       "tickets@moonlightcinema.com",
		website:     "https://moonlightcinema.com",
		imageURL:    "https://images.unsplash.com/photo-1489599849927-2ee91cede3ba?w=800",
		hours:       `{"mon": "16:00-23:00", "tue": "16:00-23:00", "wed": "16:00-23:00", "thu": "16:00-23:00", "fri": "14:00-24:00", "sat": "12:00-24:00", "sun": "12:00-22:00"}`,
	},
	{
		name:        "Peak Performance Gym",
		description: "State-of-the-art fitness facility with personal training, group classes, and top-tier equipment. Achieve your fitness goals with us.",
		category:    "health",
		address:     "901 Fitness Lane, Sports Complex",
		phone:       "(555) 012-3456",
		email:       "join@peakgym.com",
		website:     "https://peakgym.com",
		imageURL:    "https://images.unsplash.com/photo-1534438327276-14e5300c3a48?w=800",
		hours:       `{"mon": "05:00-23:00", "tue": "05:00-23:00", "wed": "05:00-23:00", "thu": "05:00-23:00", "fri": "05:00-22:00", "sat": "06:00-20:00", "sun": "07:00-18:00"}`,
	},
	{
		name:        "Bella Italia Trattoria",
		description: "Authentic Italian cuisine made with imported ingredients and family recipes. Wood-fired pizzas, handmade pasta, and fine wines.",
		category:    "food",
		address:     "345 Italian Way, Little Italy",
		phone:       "(555) 234-5670",
		email:       "ciao@bellaitalia.com",
		website:     "https://bellaitalia.com",
		imageURL:    "https://images.unsplash.com/photo-1555396273-367ea4eb4db5?w=800",
		hours:       `{"mon": "closed", "tue": "17:00-22:00", "wed": "17:00-22:00", "thu": "17:00-22:00", "fri": "17:00-23:00", "sat": "12:00-23:00", "sun": "12:00-21:00"}`,
	},
	{
		name:        "Page Turner Books",
		description: "Independent bookstore with curated selections, author events, and a cozy reading nook. Supporting literacy in our community.",
		category:    "retail",
		address:     "678 Literary Lane, University District",
		phone:       "(555) 345-6780",
		email:       "read@pageturner.com",
		website:     "https://pageturner.com",
		imageURL:    "https://images.unsplash.com/photo-1526243741027-444d633d7365?w=800",
		hours:       `{"mon": "09:00-20:00", "tue": "09:00-20:00", "wed": "09:00-20:00", "thu": "09:00-21:00", "fri": "09:00-21:00", "sat": "09:00-21:00", "sun": "10:00-18:00"}`,
	},
}

var seedUsers = []struct{ username, email string }{
	{"sarah_m", "sarah@email.com"},
	{"mike_t", "mike@email.com"},
	{"jenny_l", "jenny@email.com"},
	{"alex_k", "alex@email.com"},
	{"chris_b", "chris@email.com"},
}

var seedReviews = []seedReview{
	{0, 0, 5, "Amazing experience!", "The food was incredible and the service was top-notch. Highly recommend the seasonal tasting menu."},
	{0, 1, 4, "Great atmosphere", "Beautiful restaurant with delicious farm-fresh dishes. A bit pricey but worth it for special occasions."},
	{1, 2, 5, "Found unique gifts", "So many wonderful handcrafted items! I found the perfect birthday present for my mom."},
	{2, 3, 5, "Best haircut ever", "The stylists here really listen to what you want. Walked out feeling like a million bucks!"},
	{2, 4, 4, "Relaxing spa day", "Booked a full spa package and it was heavenly. Only minor issue was the wait time."},
	{3, 0, 5, "Nostalgia overload!", "Love this place! They have all the classic arcade games from my childhood plus new VR stuff."},
	{4, 1, 5, "Life-changing yoga", "The instructors are amazing. I have been coming for 6 months and my flexibility has improved so much."},
	{5, 2, 4, "Coffee perfection", "Best espresso in town. The baristas really know their craft. Gets busy on weekends."},
	{5, 3, 5, "My daily stop", "Cannot start my day without their cold brew. The pastries are freshly baked too!"},
	{6, 4, 4, "Plant paradise", "Huge selection of plants and the staff gave me great advice for my balcony garden."},
	{7, 0, 5, "Fixed my laptop fast", "Brought in my laptop with a broken screen, had it back the next day. Great service!"},
	{8, 1, 4, "Unique film selection", "Love discovering indie films here. The craft beer selection is a nice bonus."},
	{9, 2, 5, "Best gym around", "Clean facilities, modern equipment, and the trainers really push you to improve."},
	{10, 3, 5, "Authentic Italian", "Feels like being in Italy! The homemade pasta is incredible."},
	{11, 4, 5, "Book lover heaven", "Such a cozy shop with excellent recommendations. The author events are wonderful."},
}

var seedDeals = []seedDeal{
	{0, "20% Off Dinner", "Get 20% off your entire dinner bill", "percentage", f(20), "RUSTIC20", 30, "Valid Sunday-Thursday. Cannot be combined with other offers."},
	{2, "Free Conditioning Treatment", "Complimentary deep conditioning with any haircut", "bogo", nil, "BLOOM2024", 45, "First-time customers only."},
	{3, "$5 Off Gaming Session", "Save $5 on any 2-hour gaming session", "fixed", f(5), "PIXEL5", 60, "One per customer per day."},
	{4, "First Class Free", "Try your first yoga class absolutely free", "percentage", f(100), "ZENITHFREE", 90, "New members only. Must register online."},
	{5, "Buy One Get One Coffee", "Buy any drink, get a second of equal or lesser value free", "bogo", nil, "GRIND2FOR1", 14, "Valid before 10am only."},
	{9, "No Enrollment Fee", "Join now with zero enrollment fee", "fixed", f(50), "PEAKFIT", 30, "Annual membership required."},
	{10, "Free Dessert", "Complimentary tiramisu with any entree", "bogo", nil, "DOLCE", 21, "Dine-in only. One per table."},
	{11, "15% Off Purchase", "Save 15% on your total purchase", "percentage", f(15), "READING15", 45, "Excludes textbooks and special orders."},
}

// SeedIfEmpty inserts the demo dataset when the businesses table is empty.
func SeedIfEmpty() error {
	var count int
	if err := PostgresDB.QueryRow(`SELECT COUNT(*) FROM businesses`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// Staggered timestamps keep a deterministic storage order and give the
	// "newest" sort something to bite on.
	base := time.Now().UTC().Add(-time.Duration(len(seedBusinesses)) * 24 * time.Hour)

	businessIDs := make([]uuid.UUID, len(seedBusinesses))
	for i, b := range seedBusinesses {
		businessIDs[i] = uuid.New()
		_, err := PostgresDB.Exec(`
			INSERT INTO businesses (id, created_at, name, description, category, address,
			                        phone, email, website, image_url, hours)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, businessIDs[i], base.Add(time.Duration(i)*24*time.Hour), b.name, b.description,
			b.category, b.address, b.phone, b.email, b.website, b.imageURL, b.hours)
		if err != nil {
			return err
		}
	}

	userIDs := make([]uuid.UUID, len(seedUsers))
	for i, u := range seedUsers {
		userIDs[i] = uuid.New()
		hash, err := utils.HashPassword("demo123")
		if err != nil {
			return err
		}
		_, err = PostgresDB.Exec(`
			INSERT INTO users (id, username, email, password_hash, is_verified)
			VALUES ($1, $2, $3, $4, TRUE)
		`, userIDs[i], u.username, u.email, hash)
		if err != nil {
			return err
		}
	}

	reviewBase := base.Add(time.Duration(len(seedBusinesses)) * 24 * time.Hour)
	for i, r := range seedReviews {
		_, err := PostgresDB.Exec(`
			INSERT INTO reviews (id, created_at, user_id, business_id, rating, title, content)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New(), reviewBase.Add(time.Duration(i)*time.Hour), userIDs[r.user],
			businessIDs[r.business], r.rating, r.title, r.content)
		if err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	for _, d := range seedDeals {
		end := now.Add(time.Duration(d.days) * 24 * time.Hour)
		_, err := PostgresDB.Exec(`
			INSERT INTO deals (id, business_id, title, description, discount_type,
			                   discount_value, code, end_date, terms)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, uuid.New(), businessIDs[d.business], d.title, d.description, d.discountType,
			d.discountValue, d.code, end, d.terms)
		if err != nil {
			return err
		}
	}

	log.Println("✅ Sample data initialized")
	return nil
}
