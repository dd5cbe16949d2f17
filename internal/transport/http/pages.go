package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/queries/featured_products"
	"github.com/light-bringer/decant-store/internal/app/product/queries/list_brands"
	"github.com/light-bringer/decant-store/internal/app/product/queries/list_products"
	"github.com/light-bringer/decant-store/internal/app/product/repo"
	"github.com/light-bringer/decant-store/internal/app/product/search"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = map[string]*template.Template{
	"home":     template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/card.html", "templates/home.html")),
	"products": template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/card.html", "templates/products.html")),
}

// notePreview is how many notes a card shows per layer.
const notePreview = 3

type option struct {
	Value    string
	Label    string
	Selected bool
}

type priceTier struct {
	Size  string
	Price string
}

type productCard struct {
	Slug       string
	Name       string
	Brand      string
	Category   string
	Gender     string
	ImageURL   string
	TopNotes   string
	MoreTop    bool
	HeartNotes string
	Prices     []priceTier
	Tracked    bool
	LowStock   bool
}

type homePage struct {
	Title    string
	Products []productCard
}

type listingPage struct {
	Title      string
	Products   []productCard
	Total      int64
	Search     string
	Brands     []option
	Categories []option
	Genders    []option
	Page       int
	TotalPages int
	PrevURL    string
	NextURL    string
}

var categoryLabels = map[domain.Category]string{
	domain.CategoryDesigner: "Designer",
	domain.CategoryNiche:    "Niche",
	domain.CategoryFresh:    "Fresh",
	domain.CategoryOriental: "Oriental",
}

var genderLabels = map[domain.Gender]string{
	domain.GenderMasculine: "Men",
	domain.GenderFeminine:  "Women",
	domain.GenderUnisex:    "Unisex",
}

// PagesHandler renders the storefront HTML pages. Store failures degrade to
// empty grids rather than error pages.
type PagesHandler struct {
	featured     *featured_products.Query
	listProducts *list_products.Query
	listBrands   *list_brands.Query
	currency     domain.Currency
	logger       *slog.Logger
}

// NewPagesHandler creates a new storefront page handler.
func NewPagesHandler(
	featured *featured_products.Query,
	listProducts *list_products.Query,
	listBrands *list_brands.Query,
	currency domain.Currency,
	logger *slog.Logger,
) *PagesHandler {
	return &PagesHandler{
		featured:     featured,
		listProducts: listProducts,
		listBrands:   listBrands,
		currency:     currency,
		logger:       logger,
	}
}

// Home handles GET /.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	products, err := h.featured.Execute(r.Context())
	if err != nil {
		h.logDegraded(r, "failed to fetch featured products", err)
	}

	h.render(w, r, "home", homePage{
		Title:    "Decant Store",
		Products: h.cards(products, false),
	})
}

// Products handles GET /products. The page size is fixed and only in-stock
// products are listed.
func (h *PagesHandler) Products(w http.ResponseWriter, r *http.Request) {
	params := search.ParseSearchParams(r.URL.Query()).ForListingPage()

	page := listingPage{
		Title: "Our Fragrance Collection",
		Page:  params.Page,
	}

	result, err := h.listProducts.Execute(r.Context(), &list_products.Request{Params: params})
	if err != nil {
		h.logDegraded(r, "failed to fetch products", err)
		page.Page = search.DefaultPage
	} else {
		page.Products = h.cards(result.Products, true)
		page.Total = result.Total
		page.TotalPages = result.TotalPages
	}

	brands, err := h.listBrands.Execute(r.Context(), &list_brands.Request{InStockOnly: true})
	if err != nil {
		h.logDegraded(r, "failed to fetch brands", err)
	}

	page.Search = params.Search
	page.Brands = brandOptions(brands, params.Brand)
	page.Categories = categoryOptions(params.Category)
	page.Genders = genderOptions(params.Gender)
	if page.Page > 1 {
		page.PrevURL = pageURL(params, page.Page-1)
	}
	if page.Page < page.TotalPages {
		page.NextURL = pageURL(params, page.Page+1)
	}

	h.render(w, r, "products", page)
}

func (h *PagesHandler) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	var buf bytes.Buffer
	if err := pageTemplates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *PagesHandler) logDegraded(r *http.Request, msg string, err error) {
	h.logger.WarnContext(r.Context(), msg,
		"error", err,
		"code", repo.ErrorCode(err),
		"request_id", RequestIDFromContext(r.Context()),
	)
}

// cards builds the grid view models. The listing grid shows all three tiers
// with N/A for absent sizes; the home grid shows the 2ml and 5ml tiers.
func (h *PagesHandler) cards(products []*domain.Product, listing bool) []productCard {
	cards := make([]productCard, 0, len(products))
	for _, p := range products {
		card := productCard{
			Slug:       p.Slug,
			Name:       p.Name,
			Brand:      p.Brand,
			Category:   string(p.Category),
			Gender:     string(p.Gender),
			ImageURL:   p.ImageURL,
			TopNotes:   joinNotes(p.TopNotes),
			MoreTop:    listing && len(p.TopNotes) > notePreview,
			HeartNotes: joinNotes(p.MiddleNotes),
		}
		card.LowStock, card.Tracked = p.LowStock()

		tiers := []struct {
			label string
			price *domain.Money
		}{
			{"2ml", p.Price2ml},
			{"5ml", p.Price5ml},
			{"10ml", p.Price10ml},
		}
		if !listing {
			tiers = tiers[:2]
			card.Tracked = false
		}
		for _, tier := range tiers {
			card.Prices = append(card.Prices, priceTier{Size: tier.label, Price: domain.FormatPrice(tier.price, h.currency)})
		}
		cards = append(cards, card)
	}
	return cards
}

func joinNotes(notes []string) string {
	if len(notes) > notePreview {
		notes = notes[:notePreview]
	}
	return strings.Join(notes, ", ")
}

func brandOptions(brands []string, selected string) []option {
	options := make([]option, 0, len(brands))
	for _, b := range brands {
		options = append(options, option{Value: b, Label: b, Selected: b == selected})
	}
	return options
}

func categoryOptions(selected domain.Category) []option {
	options := make([]option, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		options = append(options, option{Value: string(c), Label: categoryLabels[c], Selected: c == selected})
	}
	return options
}

func genderOptions(selected domain.Gender) []option {
	options := make([]option, 0, len(domain.Genders))
	for _, g := range domain.Genders {
		options = append(options, option{Value: string(g), Label: genderLabels[g], Selected: g == selected})
	}
	return options
}

// pageURL links to another page of the listing with the same filters.
// The fixed limit and in-stock flag are implied by the page itself.
func pageURL(params search.SearchParams, page int) string {
	values := params.Values()
	values.Del(search.KeyInStock)
	values.Del(search.KeyLimit)
	values.Del(search.KeyPage)
	if page > 1 {
		values.Set(search.KeyPage, strconv.Itoa(page))
	}
	if len(values) == 0 {
		return "/products"
	}
	return "/products?" + values.Encode()
}
