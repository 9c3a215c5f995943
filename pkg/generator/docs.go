// FILE: pkg/generator/docs.go
// Narrative document generators: README, LICENSE, machine descriptor
package generator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"launchforge-be/internal/entity"
)

// Marker rendered in the license document when license data is absent, so the
// document layout stays stable regardless of input completeness.
const notApplicable = "N/A"

// DescriptorFile is the machine-readable record of what was shipped, used to
// regenerate or audit an order later.
const DescriptorFile = "launchforge.json"

type descriptor struct {
	Generator   string   `json:"generator"`
	OrderNumber string   `json:"orderNumber"`
	Tier        string   `json:"tier"`
	Template    string   `json:"template"`
	Features    []string `json:"features"`
}

// BuildDescriptor renders launchforge.json. It is deterministic for a given
// order so repeated generation stays reproducible.
func BuildDescriptor(order *entity.Order, set *ResolvedFeatureSet) ([]byte, error) {
	templateSlug := ""
	if order.Template != nil {
		templateSlug = order.Template.Slug
	}
	slugs := set.AllFeatureSlugs
	if slugs == nil {
		slugs = []string{}
	}
	d := descriptor{
		Generator:   "launchforge",
		OrderNumber: order.OrderNumber,
		Tier:        order.Tier,
		Template:    templateSlug,
		Features:    slugs,
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render descriptor: %w", err)
	}
	return append(b, '\n'), nil
}

// BuildReadme renders the project README: included features grouped by their
// owning module's category, then generic quick-start instructions. Categories
// are emitted in alphabetical order, features in discovery order within each.
func BuildReadme(order *entity.Order, set *ResolvedFeatureSet) []byte {
	projectName := "Your SaaS Project"
	if order.Template != nil {
		projectName = order.Template.Name
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", projectName)
	fmt.Fprintf(&sb, "Generated by LaunchForge for order %s (%s tier).\n\n", order.OrderNumber, order.Tier)

	if !set.Empty() {
		sb.WriteString("## Included Features\n")

		grouped := make(map[string][]*entity.Feature)
		for _, feature := range set.Features {
			category := feature.Category()
			grouped[category] = append(grouped[category], feature)
		}
		categories := make([]string, 0, len(grouped))
		for category := range grouped {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		for _, category := range categories {
			fmt.Fprintf(&sb, "\n### %s\n\n", titleCase(category))
			for _, feature := range grouped[category] {
				fmt.Fprintf(&sb, "- **%s**: %s\n", feature.Name, feature.Description)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(`## Quick Start

1. Install dependencies:

   npm install

2. Copy the environment template and fill in the required values:

   cp .env.example .env

3. Apply the database schema:

   npx prisma migrate dev

4. Run the development server:

   npm run dev

See launchforge.json for the full list of features in this build.
`)
	return []byte(sb.String())
}

// BuildLicenseDoc renders LICENSE.md. Fields without data render an explicit
// N/A marker rather than being omitted, so every generated project carries
// the same document layout.
func BuildLicenseDoc(order *entity.Order) []byte {
	licenseKey := notApplicable
	expires := notApplicable
	if order.License != nil {
		if order.License.Key != "" {
			licenseKey = order.License.Key
		}
		if order.License.ExpiresAt != nil {
			expires = order.License.ExpiresAt.UTC().Format("2006-01-02")
		}
	}

	var sb strings.Builder
	sb.WriteString("# License\n\n")
	sb.WriteString("This codebase was generated and licensed for single-product commercial use.\n\n")
	fmt.Fprintf(&sb, "- Order number: %s\n", valueOr(order.OrderNumber))
	fmt.Fprintf(&sb, "- Licensee: %s\n", valueOr(order.CustomerName))
	fmt.Fprintf(&sb, "- Email: %s\n", valueOr(order.CustomerEmail))
	fmt.Fprintf(&sb, "- Tier: %s\n", valueOr(order.Tier))
	fmt.Fprintf(&sb, "- License key: %s\n", licenseKey)
	fmt.Fprintf(&sb, "- Valid until: %s\n", expires)
	sb.WriteString("\nRedistribution of this source tree as a competing boilerplate or template product is not permitted.\n")
	return []byte(sb.String())
}

func valueOr(s string) string {
	if s == "" {
		return notApplicable
	}
	return s
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
