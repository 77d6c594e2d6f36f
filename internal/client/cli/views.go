package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/beehive-drones/admin/internal/client/crud"
	"github.com/beehive-drones/admin/internal/client/models"
	"github.com/beehive-drones/admin/internal/client/resources"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var rupiah = message.NewPrinter(language.Indonesian)

// formatPrice renders an amount the way the storefront does, e.g. Rp1.500.000.
func formatPrice(v float64) string {
	return rupiah.Sprintf("Rp%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// displayDate turns YYYY-MM-DD into DD-MM-YYYY.
func displayDate(s string) string {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return s
	}
	return t.Format("02-01-2006")
}

func relationNames(rs []models.Relation) string {
	names := make([]string, 0, len(rs))
	for _, r := range rs {
		names = append(names, r.Name)
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func section(b *strings.Builder, heading, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	fmt.Fprintf(b, "## %s\n\n%s\n\n", heading, body)
}

func articleView(ctrl *crud.Controller[models.Article, resources.ArticleDraft], origin string) view {
	return &resourceView[models.Article, resources.ArticleDraft]{
		ctrl:    ctrl,
		columns: []string{"Title", "Author", "Content", "Categories"},
		row: func(a models.Article) []string {
			return []string{a.Title, a.Author, clip(a.Content, 40), relationNames(a.Categories)}
		},
		doc: func(a models.Article) string {
			var b strings.Builder
			fmt.Fprintf(&b, "# %s\n\n*by %s* | %s\n\n", a.Title, a.Author, relationNames(a.Categories))
			img := a.ImageURL
			if img == "" {
				img = models.ResolveImageURL(origin, a.Image)
			}
			if img != "" {
				fmt.Fprintf(&b, "![cover](%s)\n\n", img)
			}
			b.WriteString(a.Content)
			b.WriteString("\n")
			return b.String()
		},
		fill: func(p *prompter, opts *crud.Options, d *resources.ArticleDraft) error {
			if err := p.text("Title", &d.Title); err != nil {
				return err
			}
			if err := p.text("Author", &d.Author); err != nil {
				return err
			}
			if err := p.multiline("Content (markdown)", &d.Content); err != nil {
				return err
			}
			if err := p.pick(opts, resources.CategoryKind, &d.Categories); err != nil {
				return err
			}
			return p.image("Image", &d.Image)
		},
	}
}

func careerView(ctrl *crud.Controller[models.Career, resources.CareerDraft]) view {
	workTypes := make([]string, 0, len(models.WorkTypes))
	for _, w := range models.WorkTypes {
		workTypes = append(workTypes, string(w))
	}

	return &resourceView[models.Career, resources.CareerDraft]{
		ctrl:    ctrl,
		columns: []string{"Title", "Location", "Work Type", "Deadline"},
		row: func(c models.Career) []string {
			return []string{c.Title, c.Location, string(c.WorkType), displayDate(c.Deadline)}
		},
		doc: func(c models.Career) string {
			var b strings.Builder
			fmt.Fprintf(&b, "# %s\n\n**Location:** %s  \n**Work type:** %s  \n**Deadline:** %s\n\n",
				c.Title, c.Location, c.WorkType, displayDate(c.Deadline))
			section(&b, "Qualifications", c.Qualifications)
			section(&b, "Responsibilities", c.Responsibilities)
			section(&b, "Benefits", c.Benefits)
			return b.String()
		},
		fill: func(p *prompter, _ *crud.Options, d *resources.CareerDraft) error {
			if err := p.text("Title", &d.Title); err != nil {
				return err
			}
			if err := p.multiline("Qualifications", &d.Qualifications); err != nil {
				return err
			}
			if err := p.multiline("Responsibilities (optional, - to clear)", &d.Responsibilities); err != nil {
				return err
			}
			if err := p.multiline("Benefits (optional, - to clear)", &d.Benefits); err != nil {
				return err
			}
			if err := p.text("Location", &d.Location); err != nil {
				return err
			}
			wt := string(d.WorkType)
			if err := p.choice("Work type", workTypes, &wt); err != nil {
				return err
			}
			d.WorkType = models.WorkType(wt)
			return p.text("Deadline (YYYY-MM-DD)", &d.Deadline)
		},
	}
}

func projectView(ctrl *crud.Controller[models.Project, resources.ProjectDraft], origin string) view {
	return &resourceView[models.Project, resources.ProjectDraft]{
		ctrl:    ctrl,
		columns: []string{"Title", "Location", "Goal", "Product/Service", "Industry"},
		row: func(p models.Project) []string {
			return []string{p.Title, p.Location, clip(p.Goal, 30), orDash(p.ProductService), orDash(p.Industry)}
		},
		doc: func(p models.Project) string {
			var b strings.Builder
			fmt.Fprintf(&b, "# %s\n\n**Location:** %s  \n**Product/service:** %s  \n**Industry:** %s\n\n",
				p.Title, p.Location, orDash(p.ProductService), orDash(p.Industry))
			if img := models.ResolveImageURL(origin, p.Image); img != "" {
				fmt.Fprintf(&b, "![project](%s)\n\n", img)
			}
			section(&b, "Goal", p.Goal)
			section(&b, "Description", p.Description)
			return b.String()
		},
		fill: func(p *prompter, opts *crud.Options, d *resources.ProjectDraft) error {
			if err := p.text("Title", &d.Title); err != nil {
				return err
			}
			if err := p.multiline("Description", &d.Description); err != nil {
				return err
			}
			if err := p.text("Location", &d.Location); err != nil {
				return err
			}
			if err := p.multiline("Goal", &d.Goal); err != nil {
				return err
			}
			if err := p.pick(opts, resources.ProductServiceKind, &d.ProductService); err != nil {
				return err
			}
			if err := p.pick(opts, resources.IndustryKind, &d.Industry); err != nil {
				return err
			}
			return p.image("Image", &d.Image)
		},
	}
}

func productView(ctrl *crud.Controller[models.Product, resources.ProductDraft], origin string) view {
	return &resourceView[models.Product, resources.ProductDraft]{
		ctrl:    ctrl,
		columns: []string{"Title", "Type", "Base Price"},
		row: func(p models.Product) []string {
			return []string{p.Title, orDash(p.Type), formatPrice(p.BasePrice)}
		},
		doc: func(p models.Product) string {
			var b strings.Builder
			fmt.Fprintf(&b, "# %s\n\n", p.Title)
			if p.Subtitle != "" {
				fmt.Fprintf(&b, "_%s_\n\n", p.Subtitle)
			}
			fmt.Fprintf(&b, "**Base price:** %s\n\n", formatPrice(p.BasePrice))
			section(&b, "Description", p.Description)

			b.WriteString("## Specifications\n\n| | |\n|---|---|\n")
			for _, kv := range [][2]string{
				{"Type", p.Type},
				{"Wingspan", p.Wingspan},
				{"Flight endurance", p.FlightEndurance},
				{"Flight range", p.FlightRange},
				{"Flight height", p.FlightHeight},
				{"Other", p.OtherDetails},
			} {
				fmt.Fprintf(&b, "| %s | %s |\n", kv[0], orDash(kv[1]))
			}
			b.WriteString("\n")

			if len(p.Include) > 0 {
				b.WriteString("## Includes\n\n")
				for _, it := range p.Include {
					fmt.Fprintf(&b, "- %s\n", it)
				}
				b.WriteString("\n")
			}
			if len(p.PackageOptions) > 0 {
				b.WriteString("## Packages\n\n")
				for _, o := range p.PackageOptions {
					fmt.Fprintf(&b, "- **%s** %s %s\n", o.Name, formatPrice(o.Price), o.Description)
				}
				b.WriteString("\n")
			}
			if len(p.Financing) > 0 {
				fmt.Fprintf(&b, "**Financing:** %s\n\n", strings.Join(p.Financing, ", "))
			}
			for i, img := range p.Images {
				if u := models.ResolveImageURL(origin, img); u != "" && !strings.HasPrefix(u, "data:") {
					fmt.Fprintf(&b, "![image %d](%s)\n", i+1, u)
				}
			}
			return b.String()
		},
		fill: func(p *prompter, _ *crud.Options, d *resources.ProductDraft) error {
			for _, f := range []struct {
				label string
				dst   *string
			}{
				{"Title", &d.Title},
				{"Subtitle", &d.Subtitle},
				{"Type", &d.Type},
				{"Wingspan", &d.Wingspan},
				{"Flight endurance", &d.FlightEndurance},
				{"Flight range", &d.FlightRange},
				{"Flight height", &d.FlightHeight},
				{"Other details", &d.OtherDetails},
			} {
				if err := p.text(f.label, f.dst); err != nil {
					return err
				}
			}
			if err := p.multiline("Description", &d.Description); err != nil {
				return err
			}
			if err := p.number("Base price", &d.BasePrice); err != nil {
				return err
			}
			if err := p.multiline("Included items (one per line)", &d.IncludeText); err != nil {
				return err
			}
			if err := p.packages(&d.PackageOptions); err != nil {
				return err
			}
			if err := p.list("Financing", &d.Financing); err != nil {
				return err
			}
			return p.gallery("Images", &d.Images)
		},
	}
}
