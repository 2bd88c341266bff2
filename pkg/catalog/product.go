package catalog

import "github.com/corexathletics/storefront/pkg/money"

// Product is immutable reference data. Callers receive copies.
type Product struct {
	ID            string        `json:"id" bson:"_id"`
	Name          string        `json:"name" bson:"name"`
	Description   string        `json:"description" bson:"description"`
	Price         money.Amount  `json:"price" bson:"price_cents"`
	OriginalPrice *money.Amount `json:"original_price,omitempty" bson:"original_price_cents,omitempty"`
	Image         string        `json:"image" bson:"image"`
	Images        []string      `json:"images,omitempty" bson:"images,omitempty"`
	Features      []string      `json:"features" bson:"features"`
	Category      Category      `json:"category" bson:"category"`
	Sizes         []Size        `json:"sizes" bson:"sizes"`
	Colors        []Color       `json:"colors" bson:"colors"`
	Rating        float64       `json:"rating" bson:"rating"`
	Reviews       int           `json:"reviews" bson:"reviews"`
	Badge         Badge         `json:"badge,omitempty" bson:"badge,omitempty"`
	Featured      bool          `json:"featured" bson:"featured"`
	Media         *Media        `json:"media,omitempty" bson:"media,omitempty"`
	FitGuide      *FitGuide     `json:"fit_guide,omitempty" bson:"fit_guide,omitempty"`
}

// Media is the optional rich media block rendered on the product page.
type Media struct {
	VideoURL  string `json:"video_url" bson:"video_url"`
	PosterURL string `json:"poster_url,omitempty" bson:"poster_url,omitempty"`
}

// FitGuide describes how a garment runs.
type FitGuide struct {
	Fit         string `json:"fit" bson:"fit"`
	ModelHeight string `json:"model_height,omitempty" bson:"model_height,omitempty"`
	ModelSize   Size   `json:"model_size,omitempty" bson:"model_size,omitempty"`
	Notes       string `json:"notes,omitempty" bson:"notes,omitempty"`
}

func (p Product) OnSale() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

func (p Product) OffersSize(s Size) bool {
	for _, have := range p.Sizes {
		if have == s {
			return true
		}
	}
	return false
}

func (p Product) OffersColor(c Color) bool {
	for _, have := range p.Colors {
		if have == c {
			return true
		}
	}
	return false
}

// clone detaches every slice and pointer so a caller cannot reach catalog state.
func (p Product) clone() Product {
	out := p
	out.Images = append([]string(nil), p.Images...)
	out.Features = append([]string(nil), p.Features...)
	out.Sizes = append([]Size(nil), p.Sizes...)
	out.Colors = append([]Color(nil), p.Colors...)
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		out.OriginalPrice = &v
	}
	if p.Media != nil {
		m := *p.Media
		out.Media = &m
	}
	if p.FitGuide != nil {
		f := *p.FitGuide
		out.FitGuide = &f
	}
	return out
}
