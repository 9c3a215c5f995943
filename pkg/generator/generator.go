// FILE: pkg/generator/generator.go
// Generation entry point: Order in, archive stream out
package generator

import (
	"context"
	"fmt"
	"io"

	"launchforge-be/internal/entity"
	"launchforge-be/internal/pkg/logger"
)

// Result summarizes one completed generation for the caller (event payloads,
// audit logging). The archive itself has already been streamed to the sink.
type Result struct {
	RootName        string
	AllFeatureSlugs []string
	FeatureCount    int
}

// ProjectGenerator wires resolver -> merger -> document generators ->
// assembler. One call per order; no shared mutable state, so a single
// instance serves concurrent generations.
type ProjectGenerator struct {
	resolver  *Resolver
	merger    *Merger
	assembler *Assembler
	log       logger.ILogger
}

func New(catalog CatalogReader, baseDir string, log logger.ILogger) *ProjectGenerator {
	return &ProjectGenerator{
		resolver:  NewResolver(catalog),
		merger:    NewMerger(baseDir),
		assembler: NewAssembler(baseDir),
		log:       log,
	}
}

// Generate resolves the order's feature closure, merges all artifacts and
// streams the assembled project as a zip archive to w.
//
// All merge work happens before the first byte reaches w: configuration
// failures (unreadable base manifest/schema) surface with a clean sink.
// Once streaming starts, any error is fatal and the caller must discard
// whatever w received.
func (g *ProjectGenerator) Generate(ctx context.Context, order *entity.Order, w io.Writer) (*Result, error) {
	var templateSlug string
	var templateIncluded []string
	if order.Template != nil {
		templateSlug = order.Template.Slug
		templateIncluded = order.Template.IncludedFeatureSlugs
	}

	set, err := g.resolver.Resolve(ctx, order.SelectedFeatureSlugs, order.Tier, templateIncluded)
	if err != nil {
		return nil, err
	}
	g.log.Info("Generator", "Resolved feature set", map[string]interface{}{
		"order_number": order.OrderNumber,
		"tier":         order.Tier,
		"features":     set.AllFeatureSlugs,
	})

	manifest, err := g.merger.MergeManifest(set)
	if err != nil {
		return nil, err
	}
	manifestBytes, err := manifest.Render()
	if err != nil {
		return nil, err
	}

	schema, err := g.merger.MergeSchema(set)
	if err != nil {
		return nil, err
	}
	g.log.Debug("Generator", "Merged schema", map[string]interface{}{
		"order_number": order.OrderNumber,
		"declarations": schema.DeclaredNames,
	})

	envSpec, err := g.merger.MergeEnv(set)
	if err != nil {
		return nil, err
	}

	descriptorBytes, err := BuildDescriptor(order, set)
	if err != nil {
		return nil, err
	}

	generated := map[string][]byte{
		baseManifestFile: manifestBytes,
		baseSchemaFile:   []byte(schema.Text),
		baseEnvFile:      RenderEnv(envSpec),
		"README.md":      BuildReadme(order, set),
		"LICENSE.md":     BuildLicenseDoc(order),
		DescriptorFile:   descriptorBytes,
	}

	rootName := ArchiveRootName(templateSlug, order.Tier)
	overlays := g.assembler.ResolveOverlays(set)

	if err := g.assembler.Stream(ctx, w, rootName, overlays, generated); err != nil {
		g.log.Error("Generator", "Archive streaming failed", map[string]interface{}{
			"order_number": order.OrderNumber,
			"error":        err.Error(),
		})
		return nil, fmt.Errorf("generate %s: %w", order.OrderNumber, err)
	}

	g.log.Info("Generator", "Archive streamed", map[string]interface{}{
		"order_number": order.OrderNumber,
		"root":         rootName,
		"overlays":     len(overlays),
	})

	return &Result{
		RootName:        rootName,
		AllFeatureSlugs: set.AllFeatureSlugs,
		FeatureCount:    len(set.Features),
	}, nil
}
