package catalog

import "github.com/corexathletics/storefront/pkg/money"

const unsplash = "https://images.unsplash.com/"

func img(path, width string) string {
	return unsplash + path + "?ixlib=rb-4.0.3&auto=format&fit=crop&w=" + width + "&q=80"
}

func price(cents int64) *money.Amount {
	a := money.FromCents(cents)
	return &a
}

// ReferenceProducts returns the Core X launch collection in display order.
func ReferenceProducts() []Product {
	return []Product{
		{
			ID:            "xt-001",
			Name:          "X-Perform Training Tee",
			Description:   "Premium performance tee engineered for maximum comfort and durability during intense training sessions.",
			Price:         money.FromCents(4500),
			OriginalPrice: price(6000),
			Image:         img("photo-1581655353564-df123a1eb820", "687"),
			Images: []string{
				img("photo-1581655353564-df123a1eb820", "687"),
				img("photo-1618354691373-d851c5c3a990", "715"),
			},
			Features: []string{"Moisture-wicking fabric", "Anti-odor technology", "Flatlock seams", "4-way stretch"},
			Category: CategoryTees,
			Sizes:    []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL},
			Colors:   []Color{ColorBlack, ColorWhite, ColorNavy, ColorRed},
			Rating:   4.8,
			Reviews:  124,
			Badge:    BadgeSale,
			Featured: true,
			FitGuide: &FitGuide{Fit: "Athletic", ModelHeight: "6'1\"", ModelSize: SizeM, Notes: "True to size. Size up for a relaxed fit."},
		},
		{
			ID:          "cs-002",
			Name:        "Core Compression Shorts",
			Description: "High-performance compression shorts designed for optimal muscle support and recovery.",
			Price:       money.FromCents(3800),
			Image:       img("photo-1506902540976-5005d40e1e9e", "687"),
			Features:    []string{"Graduated compression", "Breathable mesh panels", "Secure pocket", "UPF 50+ protection"},
			Category:    CategoryCompression,
			Sizes:       []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL},
			Colors:      []Color{ColorBlack, ColorCharcoal, ColorNavy},
			Rating:      4.9,
			Reviews:     89,
			Featured:    true,
		},
		{
			ID:          "xb-003",
			Name:        "X-Flex Sports Bra",
			Description: "Medium to high support sports bra with innovative moisture management technology.",
			Price:       money.FromCents(4200),
			Image:       img("photo-1568252542512-9fe8fe9c87bb", "686"),
			Features:    []string{"Medium support", "Removable padding", "Racerback design", "Sweat-wicking"},
			Category:    CategorySportsBras,
			Sizes:       []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL},
			Colors:      []Color{ColorBlack, ColorWhite, ColorPink, ColorPurple},
			Rating:      4.7,
			Reviews:     156,
			Badge:       BadgeNew,
		},
		{
			ID:          "xj-004",
			Name:        "X-Run Performance Joggers",
			Description: "Premium joggers designed for runners who demand comfort, flexibility, and style.",
			Price:       money.FromCents(6500),
			Image:       img("photo-1556821840-3a63f95609a7", "687"),
			Features:    []string{"Water-resistant fabric", "Zip pockets", "Tapered fit", "Reflective details"},
			Category:    CategoryJoggers,
			Sizes:       []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL},
			Colors:      []Color{ColorBlack, ColorNavy, ColorCharcoal, ColorOlive},
			Rating:      4.6,
			Reviews:     92,
			FitGuide:    &FitGuide{Fit: "Tapered", ModelHeight: "5'11\"", ModelSize: SizeM},
		},
		{
			ID:            "xh-005",
			Name:          "X-Core Training Hoodie",
			Description:   "Versatile training hoodie perfect for pre-workout warmups and post-training recovery.",
			Price:         money.FromCents(7500),
			OriginalPrice: price(9500),
			Image:         img("photo-1556821840-3a63f95609a7", "687"),
			Features:      []string{"French terry fabric", "Kangaroo pocket", "Thumbhole cuffs", "Athletic fit"},
			Category:      CategoryHoodies,
			Sizes:         []Size{SizeS, SizeM, SizeL, SizeXL, SizeXXL},
			Colors:        []Color{ColorBlack, ColorGray, ColorNavy},
			Rating:        4.8,
			Reviews:       67,
			Badge:         BadgeSale,
		},
		{
			ID:          "xt-006",
			Name:        "X-Tank Performance Top",
			Description: "Lightweight performance tank designed for high-intensity training and summer workouts.",
			Price:       money.FromCents(3500),
			Image:       img("photo-1571019613454-1cb2f99b2d8b", "1170"),
			Features:    []string{"Ultra-lightweight", "Quick-dry technology", "Mesh ventilation", "Loose fit"},
			Category:    CategoryTanks,
			Sizes:       []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL},
			Colors:      []Color{ColorBlack, ColorWhite, ColorBlue, ColorGreen},
			Rating:      4.5,
			Reviews:     143,
		},
	}
}

// Default returns the reference catalog. It panics only if the built-in data
// is invalid, which the package tests rule out.
func Default() *Catalog {
	c, err := New(ReferenceProducts())
	if err != nil {
		panic(err)
	}
	return c
}
