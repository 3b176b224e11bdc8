package main

import "github.com/shopspring/decimal"

type seedProduct struct {
	Name        string
	Description string
	Price       int64
	Image       string
	Category    string
	Sizes       []string
	Stock       int64
	Badge       string
}

func unsplash(photo string) string {
	return "https://images.unsplash.com/photo-" + photo + "?w=800&q=80"
}

func (p seedProduct) price() decimal.Decimal {
	return decimal.NewFromInt(p.Price)
}

var catalogSeed = []seedProduct{
	// Vestidos
	{"Rosé Tulle Dress", "Delicate tulle dress with rose details. Perfect for special occasions.", 189, unsplash("1519689373023-dd07c7988603"), "Vestidos", []string{"0-3M", "3-6M", "6-12M", "12-18M"}, 8, "Limited Stock"},
	{"Pearl Lace Dress", "Elegant white dress with pearl details and lace trim.", 199, unsplash("1519238400177-d740f7d28e61"), "Vestidos", []string{"0-3M", "3-6M", "6-12M", "12-18M", "18-24M"}, 5, "Limited"},
	{"Mint Tutu Skirt", "Fluffy tulle skirt in mint green. Adorable and comfortable.", 139, unsplash("1515488042361-ee00e0ddd4e4"), "Vestidos", []string{"6-12M", "12-18M", "18-24M"}, 12, ""},
	{"Lavender Dream Dress", "Soft lavender dress with delicate embroidery.", 179, unsplash("1596870230751-ebdfce98ec42"), "Vestidos", []string{"0-3M", "3-6M", "6-12M", "12-18M"}, 15, "Best Seller"},
	{"Champagne Gown", "Luxurious champagne-colored gown for special events.", 259, unsplash("1522771930-78848d9293e8"), "Vestidos", []string{"12-18M", "18-24M"}, 3, "Limited"},

	// Conjuntos
	{"Soft Cotton Set", "Organic cotton set with matching top and bloomers.", 139, unsplash("1522771739844-6a9f6d5f14af"), "Conjuntos", []string{"0-3M", "3-6M", "6-12M", "12-18M", "18-24M"}, 20, "Organic"},
	{"Pastel Knit Set", "Hand-knit cardigan and pants in pastel tones.", 169, unsplash("1519238881500-d74ae3eee86c"), "Conjuntos", []string{"0-3M", "3-6M", "6-12M", "12-18M"}, 10, "Handmade"},
	{"Linen Summer Set", "Breathable linen top and shorts for warm days.", 149, unsplash("1515488764276-beab7607c1e6"), "Conjuntos", []string{"6-12M", "12-18M", "18-24M"}, 18, ""},
	{"Vintage Embroidered Set", "Classic design with hand embroidery details.", 189, unsplash("1503454537195-1dcabb73ffb9"), "Conjuntos", []string{"3-6M", "6-12M", "12-18M"}, 7, "Limited"},

	// Rompers
	{"Rose Garden Romper", "Playful romper with rose print pattern.", 129, unsplash("1519238399278-0671778fcd08"), "Rompers", []string{"0-3M", "3-6M", "6-12M", "12-18M", "18-24M"}, 25, "Best Seller"},
	{"Lace Collar Romper", "Elegant romper with lace collar detail.", 149, unsplash("1514090458221-65bb69cf63e2"), "Rompers", []string{"0-3M", "3-6M", "6-12M", "12-18M"}, 14, ""},
	{"Bow Back Romper", "Adorable romper with oversized bow on back.", 139, unsplash("1519689200606-d87cd41ae327"), "Rompers", []string{"0-3M", "3-6M", "6-12M"}, 16, "New"},
	{"Floral Smocked Romper", "Hand-smocked romper with floral embroidery.", 159, unsplash("1522771930-78848d9293e8"), "Rompers", []string{"3-6M", "6-12M", "12-18M", "18-24M"}, 9, "Handmade"},
	{"Linen Bubble Romper", "Classic bubble romper in natural linen.", 169, unsplash("1519689373023-dd07c7988603"), "Rompers", []string{"6-12M", "12-18M", "18-24M"}, 11, ""},

	// Accesorios
	{"Delicate Headband", "Soft elastic headband with flower detail.", 39, unsplash("1522771739844-6a9f6d5f14af"), "Accesorios", []string{"One Size"}, 50, ""},
	{"Bonnet with Lace", "Vintage-style bonnet with delicate lace trim.", 69, unsplash("1515488764276-beab7607c1e6"), "Accesorios", []string{"0-6M", "6-12M"}, 30, ""},
	{"Bow Hair Clips Set", "Set of 3 handmade bow clips in assorted colors.", 49, unsplash("1519238400177-d740f7d28e61"), "Accesorios", []string{"One Size"}, 40, "Best Seller"},
	{"Cashmere Blanket", "Ultra-soft cashmere baby blanket.", 189, unsplash("1522771739844-6a9f6d5f14af"), "Accesorios", []string{"80x100cm"}, 15, "Premium"},

	// Especial
	{"Christening Gown", "Heirloom-quality christening gown with intricate details.", 239, unsplash("1596870230751-ebdfce98ec42"), "Especial", []string{"0-3M", "3-6M"}, 6, "Limited"},
	{"Birthday Princess Set", "Complete outfit set for first birthday celebrations.", 179, unsplash("1515488042361-ee00e0ddd4e4"), "Especial", []string{"12M"}, 10, "New"},
}
