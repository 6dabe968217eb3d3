package assistantService

import (
	"context"
	"time"

	"fineo-backend/internal/entity"
	contextPkg "fineo-backend/pkg/context"
	"fineo-backend/pkg/nav"

	"github.com/sirupsen/logrus"
)

const (
	catalogCacheKey = "assistant:catalog"
	catalogCacheTTL = 10 * time.Minute
)

// loadCatalog resolves the destination catalog: cache first, then the
// navigation_pages table, then the built-in default when the table is
// empty or unreachable. Sessions hold the catalog immutably once built.
func (s *assistantService) loadCatalog(ctx context.Context) (nav.Catalog, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if cached, err := s.redisServer.GetCatalog(ctx, catalogCacheKey); err == nil && len(cached) > 0 {
		return makeCatalog(cached), nil
	}

	repo, err := s.assistantRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	pages, err := repo.Page.GetActivePages(ctx)
	if err != nil || len(pages) == 0 {
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Falling back to default catalog")
		}
		pages = defaultPages()
	}

	if err := s.redisServer.SetCatalog(ctx, catalogCacheKey, pages, catalogCacheTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to cache catalog")
	}

	return makeCatalog(pages), nil
}

func makeCatalog(pages []entity.NavigationPage) nav.Catalog {
	catalog := make(nav.Catalog, 0, len(pages))
	for _, page := range pages {
		catalog = append(catalog, nav.Option{
			Name:        page.Name,
			Path:        page.Path,
			Description: page.Description,
			Category:    page.Category,
			Keywords:    page.Keywords,
			Aliases:     page.Aliases,
		})
	}
	return catalog
}

// defaultPages seeds the catalog when the navigation_pages table has no
// active rows. Order matters downstream as the fuzzy tie-break and the
// fallback suggestion ranking.
func defaultPages() []entity.NavigationPage {
	return []entity.NavigationPage{
		{
			Name:        "Home",
			Path:        "/",
			Description: "Landing page with an overview of the product",
			Category:    "general",
			Keywords:    []string{"start", "main", "landing", "overview"},
			Aliases:     []string{"homepage", "main page"},
			IsActive:    true,
		},
		{
			Name:        "Dashboard",
			Path:        "/dashboard",
			Description: "Your financial dashboard with charts and account totals",
			Category:    "finance",
			Keywords:    []string{"overview", "charts", "accounts", "summary"},
			Aliases:     []string{"dash", "my dashboard"},
			IsActive:    true,
		},
		{
			Name:        "Personal",
			Path:        "/personal",
			Description: "Your personal profile and account details",
			Category:    "account",
			Keywords:    []string{"profile", "account", "details", "me"},
			Aliases:     []string{"my profile", "my account"},
			IsActive:    true,
		},
		{
			Name:        "Portfolio",
			Path:        "/portfolio",
			Description: "Investment portfolio with holdings and performance",
			Category:    "finance",
			Keywords:    []string{"investments", "stocks", "holdings", "performance"},
			Aliases:     []string{"my portfolio", "investments page"},
			IsActive:    true,
		},
		{
			Name:        "Insights",
			Path:        "/insights",
			Description: "Spending insights and financial analytics",
			Category:    "finance",
			Keywords:    []string{"analytics", "spending", "trends", "reports"},
			Aliases:     []string{"analysis", "reports page"},
			IsActive:    true,
		},
		{
			Name:        "Loans",
			Path:        "/loans",
			Description: "Loan products, applications and repayment schedules",
			Category:    "finance",
			Keywords:    []string{"credit", "borrow", "mortgage", "repayment"},
			Aliases:     []string{"my loans", "lending"},
			IsActive:    true,
		},
		{
			Name:        "Financial Analysis",
			Path:        "/financial-analysis",
			Description: "Deep analysis of your transactions and cash flow",
			Category:    "finance",
			Keywords:    []string{"transactions", "cash flow", "analysis", "statements"},
			Aliases:     []string{"analyze finances"},
			IsActive:    true,
		},
		{
			Name:        "Settings",
			Path:        "/settings",
			Description: "Application preferences, security and notifications",
			Category:    "account",
			Keywords:    []string{"preferences", "security", "notifications", "configuration"},
			Aliases:     []string{"preferences page", "config"},
			IsActive:    true,
		},
		{
			Name:        "About",
			Path:        "/about",
			Description: "About the company and our mission",
			Category:    "company",
			Keywords:    []string{"company", "mission", "team", "story"},
			Aliases:     []string{"about us", "who we are"},
			IsActive:    true,
		},
		{
			Name:        "Contact",
			Path:        "/contact",
			Description: "Get in touch with customer support",
			Category:    "company",
			Keywords:    []string{"support", "help desk", "email", "phone"},
			Aliases:     []string{"contact us", "customer support"},
			IsActive:    true,
		},
		{
			Name:        "Careers",
			Path:        "/careers",
			Description: "Open positions and working at the company",
			Category:    "company",
			Keywords:    []string{"jobs", "hiring", "positions", "work"},
			Aliases:     []string{"jobs page", "join us"},
			IsActive:    true,
		},
		{
			Name:        "Press",
			Path:        "/press",
			Description: "Press releases and media resources",
			Category:    "company",
			Keywords:    []string{"news", "media", "announcements"},
			Aliases:     []string{"newsroom"},
			IsActive:    true,
		},
		{
			Name:        "Recommendations",
			Path:        "/recommendations",
			Description: "Personalized product and savings recommendations",
			Category:    "finance",
			Keywords:    []string{"suggestions", "advice", "products", "savings"},
			Aliases:     []string{"recommended for you"},
			IsActive:    true,
		},
	}
}
