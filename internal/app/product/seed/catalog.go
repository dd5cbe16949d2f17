// Package seed holds the starter catalog and writes it to the stores.
package seed

import (
	"fmt"
	"time"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
)

// CatalogEpoch is the creation time of the oldest catalog entry. Entries
// are created one day apart in declaration order.
var CatalogEpoch = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

type entry struct {
	slug, name, brand, description string
	top, middle, base              []string
	p2, p5, p10                    string
	category                       domain.Category
	gender                         domain.Gender
	inStock                        bool
	bottles                        []bottle
	reviews                        int64
}

type bottle struct {
	sizeMl, used int64
}

var entries = []entry{
	{
		slug: "dior-sauvage-edp", name: "Sauvage Eau de Parfum", brand: "Dior",
		description: "Fresh spicy fragrance built around Calabrian bergamot and ambroxan.",
		top: []string{"Bergamot", "Pepper"}, middle: []string{"Lavender", "Sichuan Pepper", "Star Anise", "Nutmeg"}, base: []string{"Ambroxan", "Vanilla"},
		p2: "6.50", p5: "14.00", p10: "25.00",
		category: domain.CategoryDesigner, gender: domain.GenderMasculine, inStock: true,
		bottles: []bottle{{100, 40}}, reviews: 12,
	},
	{
		slug: "chanel-bleu-de-chanel", name: "Bleu de Chanel", brand: "Chanel",
		description: "Woody aromatic composition with citrus and incense.",
		top: []string{"Grapefruit", "Lemon", "Mint", "Pink Pepper"}, middle: []string{"Ginger", "Jasmine", "Nutmeg"}, base: []string{"Incense", "Sandalwood", "Cedar"},
		p2: "7.00", p5: "15.50", p10: "28.00",
		category: domain.CategoryDesigner, gender: domain.GenderMasculine, inStock: true,
		bottles: []bottle{{100, 20}}, reviews: 8,
	},
	{
		slug: "creed-aventus", name: "Aventus", brand: "Creed",
		description: "Fruity chypre with pineapple, birch and musk.",
		top: []string{"Pineapple", "Bergamot", "Black Currant", "Apple"}, middle: []string{"Birch", "Patchouli", "Jasmine"}, base: []string{"Musk", "Oakmoss", "Ambergris"},
		p2: "12.00", p5: "27.00", p10: "50.00",
		category: domain.CategoryNiche, gender: domain.GenderMasculine, inStock: true,
		bottles: []bottle{{100, 92}}, reviews: 21,
	},
	{
		slug: "mfk-baccarat-rouge-540", name: "Baccarat Rouge 540", brand: "Maison Francis Kurkdjian",
		description: "Luminous amber floral with saffron and cedar.",
		top: []string{"Saffron", "Jasmine"}, middle: []string{"Amberwood", "Ambergris"}, base: []string{"Fir Resin", "Cedar"},
		p2: "14.00", p5: "32.00", p10: "60.00",
		category: domain.CategoryNiche, gender: domain.GenderUnisex, inStock: true,
		bottles: []bottle{{70, 30}}, reviews: 17,
	},
	{
		slug: "tom-ford-oud-wood", name: "Oud Wood", brand: "Tom Ford",
		description: "Smoky oud softened by sandalwood and tonka.",
		top: []string{"Rosewood", "Cardamom", "Chinese Pepper"}, middle: []string{"Oud", "Sandalwood", "Vetiver"}, base: []string{"Tonka Bean", "Vanilla", "Amber"},
		p2: "11.00", p5: "25.00", p10: "46.00",
		category: domain.CategoryOriental, gender: domain.GenderUnisex, inStock: true,
		bottles: []bottle{{50, 46}}, reviews: 9,
	},
	{
		slug: "dior-jadore", name: "J'adore", brand: "Dior",
		description: "Bright floral bouquet of ylang-ylang, rose and jasmine.",
		top: []string{"Pear", "Melon", "Bergamot"}, middle: []string{"Jasmine", "Rose", "Ylang-Ylang"}, base: []string{"Musk", "Vanilla", "Cedar"},
		p2: "6.00", p5: "13.50", p10: "24.00",
		category: domain.CategoryDesigner, gender: domain.GenderFeminine, inStock: true,
		bottles: []bottle{{100, 10}}, reviews: 6,
	},
	{
		slug: "acqua-di-parma-colonia", name: "Colonia", brand: "Acqua di Parma",
		description: "Classic Italian citrus cologne.",
		top: []string{"Lemon", "Sweet Orange", "Bergamot"}, middle: []string{"Lavender", "Rosemary", "Rose"}, base: []string{"Vetiver", "Sandalwood", "Patchouli"},
		p2: "5.50", p5: "12.00",
		category: domain.CategoryFresh, gender: domain.GenderUnisex, inStock: true,
		reviews: 3,
	},
	{
		slug: "le-labo-santal-33", name: "Santal 33", brand: "Le Labo",
		description: "Creamy sandalwood with cardamom and violet.",
		top: []string{"Cardamom", "Violet"}, middle: []string{"Iris", "Ambrox"}, base: []string{"Sandalwood", "Cedar", "Leather"},
		p2: "10.00", p5: "23.00", p10: "42.00",
		category: domain.CategoryNiche, gender: domain.GenderUnisex, inStock: false,
		bottles: []bottle{{100, 100}}, reviews: 14,
	},
	{
		slug: "ysl-libre", name: "Libre", brand: "Yves Saint Laurent",
		description: "Lavender and orange blossom over warm vanilla.",
		top: []string{"Mandarin", "Lavender", "Black Currant"}, middle: []string{"Orange Blossom", "Jasmine"}, base: []string{"Vanilla", "Musk", "Cedar"},
		p2: "6.50", p5: "14.50", p10: "26.00",
		category: domain.CategoryDesigner, gender: domain.GenderFeminine, inStock: true,
		bottles: []bottle{{90, 81}}, reviews: 5,
	},
	{
		slug: "guerlain-shalimar", name: "Shalimar", brand: "Guerlain",
		description: "Oriental classic of iris, vanilla and opoponax.",
		top: []string{"Bergamot", "Lemon"}, middle: []string{"Iris", "Jasmine", "Rose"}, base: []string{"Vanilla", "Opoponax", "Tonka Bean", "Incense"},
		p5: "15.00", p10: "27.00",
		category: domain.CategoryOriental, gender: domain.GenderFeminine, inStock: true,
		bottles: []bottle{{90, 25}}, reviews: 4,
	},
	{
		slug: "byredo-gypsy-water", name: "Gypsy Water", brand: "Byredo",
		description: "Pine needles, incense and vanilla around a campfire.",
		top: []string{"Bergamot", "Lemon", "Pepper", "Juniper"}, middle: []string{"Incense", "Pine Needles", "Orris"}, base: []string{"Amber", "Vanilla", "Sandalwood"},
		p2: "9.00", p5: "20.00", p10: "37.00",
		category: domain.CategoryNiche, gender: domain.GenderUnisex, inStock: true,
		bottles: []bottle{{100, 55}}, reviews: 7,
	},
	{
		slug: "dior-homme-intense", name: "Dior Homme Intense", brand: "Dior",
		description: "Powdery iris with pear and vetiver.",
		top: []string{"Lavender"}, middle: []string{"Iris", "Ambrette", "Pear"}, base: []string{"Vetiver", "Cedar"},
		p2: "7.50", p5: "16.50", p10: "30.00",
		category: domain.CategoryDesigner, gender: domain.GenderMasculine, inStock: true,
		bottles: []bottle{{100, 60}, {150, 0}}, reviews: 10,
	},
	{
		slug: "chanel-chance-eau-tendre", name: "Chance Eau Tendre", brand: "Chanel",
		description: "Soft fruity floral with grapefruit and jasmine.",
		top: []string{"Quince", "Grapefruit"}, middle: []string{"Hyacinth", "Jasmine"}, base: []string{"White Musk", "Iris", "Virginia Cedar", "Amber"},
		p2: "7.00", p5: "15.50", p10: "28.00",
		category: domain.CategoryFresh, gender: domain.GenderFeminine, inStock: true,
		bottles: []bottle{{100, 35}}, reviews: 11,
	},
	{
		slug: "tom-ford-lost-cherry", name: "Lost Cherry", brand: "Tom Ford",
		description: "Black cherry liqueur with almond and tonka.",
		top: []string{"Black Cherry", "Cherry Liqueur", "Bitter Almond"}, middle: []string{"Turkish Rose", "Jasmine Sambac"}, base: []string{"Tonka Bean", "Peru Balsam", "Sandalwood"},
		p2: "13.00", p5: "30.00", p10: "56.00",
		category: domain.CategoryOriental, gender: domain.GenderUnisex, inStock: false,
		reviews: 2,
	},
}

// lowStockRatio is the used share of a bottle at which it raises the
// low-stock alert.
const lowStockRatio = 0.8

// Products returns the starter catalog with inventory and published review
// counts attached. Every call returns fresh values.
func Products() []*domain.Product {
	products := make([]*domain.Product, 0, len(entries))
	for i, e := range entries {
		created := CatalogEpoch.Add(time.Duration(i) * 24 * time.Hour)
		p := &domain.Product{
			ID:          fmt.Sprintf("prod-%03d", i+1),
			Slug:        e.slug,
			Name:        e.name,
			Brand:       e.brand,
			Description: e.description,
			TopNotes:    append([]string{}, e.top...),
			MiddleNotes: append([]string{}, e.middle...),
			BaseNotes:   append([]string{}, e.base...),
			Price2ml:    money(e.p2),
			Price5ml:    money(e.p5),
			Price10ml:   money(e.p10),
			Category:    e.category,
			Gender:      e.gender,
			InStock:     e.inStock,
			CreatedAt:   created,
			UpdatedAt:   created,
			Inventory:   []domain.Inventory{},
			Count:       domain.ReviewCount{Reviews: e.reviews},
		}
		for _, b := range e.bottles {
			p.Inventory = append(p.Inventory, domain.Inventory{
				BottleSizeMl:  b.sizeMl,
				TotalVolume:   b.sizeMl,
				UsedVolume:    b.used,
				LowStockAlert: float64(b.used) >= lowStockRatio*float64(b.sizeMl),
			})
		}
		products = append(products, p)
	}
	return products
}

func money(s string) *domain.Money {
	if s == "" {
		return nil
	}
	m, err := domain.ParseMoney(s)
	if err != nil {
		panic(fmt.Sprintf("seed: invalid price %q: %v", s, err))
	}
	return m
}
