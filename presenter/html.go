package presenter

import (
	"embed"
	"fmt"
	"io"
	"strings"

	"github.com/osteele/liquid"

	"mortgage-calculator/domain"
)

//go:embed templates/*.liquid
var templateFS embed.FS

const (
	tplQuote         = "quote"
	tplError         = "error"
	tplPage          = "page"
	tplContactStatus = "contact_status"
)

// PageData is what the full calculator page needs: the values to prefill
// and the already rendered result panel.
type PageData struct {
	Title       string
	Inputs      domain.LoanInputs
	TermOptions []string
	Result      string
}

// HTMLRenderer renders panels and the calculator page from Liquid templates
// parsed once at construction.
type HTMLRenderer struct {
	engine    *liquid.Engine
	templates map[string]*liquid.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	r := &HTMLRenderer{
		engine:    liquid.NewEngine(),
		templates: make(map[string]*liquid.Template),
	}
	for _, name := range []string{tplQuote, tplError, tplPage, tplContactStatus} {
		src, err := templateFS.ReadFile("templates/" + name + ".liquid")
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}
		tpl, perr := r.engine.ParseTemplate(src)
		if perr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, perr)
		}
		r.templates[name] = tpl
	}
	return r, nil
}

func (r *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *HTMLRenderer) RenderQuote(w io.Writer, s Summary) error {
	return r.render(w, tplQuote, s.bindings())
}

func (r *HTMLRenderer) RenderError(w io.Writer, message string) error {
	return r.render(w, tplError, map[string]any{"message": message})
}

func (r *HTMLRenderer) RenderContactStatus(w io.Writer, status domain.SubmissionStatus) error {
	return r.render(w, tplContactStatus, map[string]any{
		"kind":    string(status.Kind),
		"message": status.Message,
	})
}

func (r *HTMLRenderer) RenderPage(w io.Writer, page PageData) error {
	return r.render(w, tplPage, map[string]any{
		"title":          page.Title,
		"purchase_price": string(page.Inputs.PurchasePrice),
		"down_payment":   string(page.Inputs.DownPayment),
		"rate":           string(page.Inputs.AnnualRatePercent),
		"term":           string(page.Inputs.TermYears),
		"term_options":   page.TermOptions,
		"result":         page.Result,
	})
}

// Fragment renders a quote or validation panel to a string, for embedding
// in the page.
func Fragment(r Renderer, quote domain.LoanQuote, err error) (string, error) {
	var sb strings.Builder
	if err != nil {
		if rerr := r.RenderError(&sb, err.Error()); rerr != nil {
			return "", rerr
		}
		return sb.String(), nil
	}
	if rerr := r.RenderQuote(&sb, NewSummary(quote)); rerr != nil {
		return "", rerr
	}
	return sb.String(), nil
}

func (r *HTMLRenderer) render(w io.Writer, name string, b map[string]any) error {
	tpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	out, err := tpl.RenderString(b)
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, werr := io.WriteString(w, out)
	return werr
}
