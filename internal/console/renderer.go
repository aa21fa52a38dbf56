package console

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

const (
	layoutTemplateFile = "templates/layout.tmpl"
	pageTemplatePrefix = "templates/"
	htmlContentType    = "text/html; charset=utf-8"

	displayDateLayout = "Jan 2, 2006"
	displayTimeLayout = "Jan 2, 2006 15:04"
	inputDateLayout   = "2006-01-02"

	logEventRenderPageFailed = "render_page_failed"
	logFieldPageName         = "page"

	renderErrorBody = "page render failed"
)

var pageTemplateNames = []string{
	"login.tmpl",
	"dashboard.tmpl",
	"contacts_list.tmpl",
	"contact_detail.tmpl",
	"demos_list.tmpl",
	"demo_detail.tmpl",
	"clients_list.tmpl",
	"client_detail.tmpl",
	"client_wizard.tmpl",
	"admins_list.tmpl",
	"admin_form.tmpl",
	"onboardings_list.tmpl",
	"onboarding_detail.tmpl",
	"onboarding_wizard.tmpl",
	"profile.tmpl",
	"access_denied.tmpl",
}

// viewState is what every rendered page receives: the chrome state plus the
// page-specific payload in Data.
type viewState struct {
	Title      string
	ThemeMode  string
	Identity   model.Admin
	SignedIn   bool
	Navigation []NavigationEntry
	ActivePath string
	Flashes    []FlashMessage
	Data       any
}

// Renderer holds the compiled page templates. Each page is parsed together
// with the shared layout so pages only define their content block.
type Renderer struct {
	logger *zap.Logger
	pages  map[string]*template.Template
}

// NewRenderer parses every embedded page template against the shared layout.
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pages := make(map[string]*template.Template, len(pageTemplateNames))
	for _, pageName := range pageTemplateNames {
		parsed, parseErr := template.New("layout.tmpl").Funcs(templateFunctions()).ParseFS(
			templateFiles,
			layoutTemplateFile,
			pageTemplatePrefix+pageName,
		)
		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", pageName, parseErr)
		}
		pages[pageName] = parsed
	}
	return &Renderer{logger: logger, pages: pages}, nil
}

// Render writes one page. Template failures become a plain 500 so a broken
// page never half-renders.
func (renderer *Renderer) Render(requestContext *gin.Context, statusCode int, pageName string, view viewState) {
	page, pageKnown := renderer.pages[pageName]
	if !pageKnown {
		renderer.logger.Error(logEventRenderPageFailed, zap.String(logFieldPageName, pageName))
		requestContext.String(http.StatusInternalServerError, renderErrorBody)
		return
	}

	var buffer bytes.Buffer
	if executeErr := page.Execute(&buffer, view); executeErr != nil {
		renderer.logger.Error(logEventRenderPageFailed,
			zap.String(logFieldPageName, pageName),
			zap.Error(executeErr),
		)
		requestContext.String(http.StatusInternalServerError, renderErrorBody)
		return
	}
	requestContext.Data(statusCode, htmlContentType, buffer.Bytes())
}

func templateFunctions() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(value *time.Time) string {
			if value == nil || value.IsZero() {
				return ""
			}
			return value.Format(displayDateLayout)
		},
		"formatTime": func(value time.Time) string {
			if value.IsZero() {
				return ""
			}
			return value.Format(displayTimeLayout)
		},
		"formatMoney": func(amount decimal.Decimal) string {
			return "Rs. " + amount.StringFixed(2)
		},
		"formatInputDate": func(value *time.Time) string {
			if value == nil || value.IsZero() {
				return ""
			}
			return value.Format(inputDateLayout)
		},
		"deref": func(amount *decimal.Decimal) decimal.Decimal {
			if amount == nil {
				return decimal.Zero
			}
			return *amount
		},
		"list": func(values ...string) []string {
			return values
		},
		"add": func(left int, right int) int {
			return left + right
		},
		"sub": func(left int, right int) int {
			return left - right
		},
	}
}
