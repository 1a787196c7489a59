package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/config"
	"github.com/tuannvm/canvasflow/internal/configform"
	"github.com/tuannvm/canvasflow/internal/palette"
)

func agentsMain(args []string) error {
	fs := flag.NewFlagSet("agents", flag.ContinueOnError)
	parseGlobalFlags(fs)

	var (
		search     string
		category   string
		configPath string
	)
	fs.StringVar(&search, "s", "", "filter by name or description")
	fs.StringVar(&search, "search", "", "filter by name or description")
	fs.StringVar(&category, "category", string(palette.All), "category: all, data_retrieval, communication, action")
	configFlag(fs, &configPath)

	fs.Usage = func() {
		fmt.Print(`Usage: canvasflow agents [type] [flags]

List the agent types in the palette. With a type id, list that
type's configurable fields instead.

Flags:
  -s, --search     Filter by name or description (case-insensitive)
  --category       all, data_retrieval, communication, action
  -c, --config     Config file path

Examples:
  canvasflow agents
  canvasflow agents -s crm
  canvasflow agents -category communication
  canvasflow agents email_outreach
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	filter, ok := palette.ParseCategory(category)
	if !ok {
		return fmt.Errorf("unknown category: %s (use: %s)", category, strings.Join(config.CategoryValues(), ", "))
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()
	descs, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	if fs.NArg() > 0 {
		d, ok := catalog.Lookup(descs, fs.Arg(0))
		if !ok {
			return fmt.Errorf("unknown agent type: %s", fs.Arg(0))
		}
		printFields(d)
		return nil
	}

	visible := palette.Filter(descs, search, filter)
	if len(visible) == 0 {
		logInfo("No agents found")
		return nil
	}

	icons := cfg.IconRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "\tTYPE\tNAME\tCATEGORY\tFIELDS")
	for _, d := range visible {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", icons.Glyph(d.Icon), d.ID, d.Name, d.Category, d.ConfigSchema.Len())
	}
	return w.Flush()
}

func printFields(d catalog.Descriptor) {
	fmt.Printf("%s (%s)\n", d.Name, d.ID)
	if d.Description != "" {
		fmt.Printf("  %s\n", d.Description)
	}
	fmt.Println()

	if d.ConfigSchema.Len() == 0 {
		fmt.Println(configform.NoFieldsMessage)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FIELD\tKIND\tDEFAULT\tDETAILS")
	for _, p := range d.ConfigSchema.Properties {
		f := configform.Field{
			Name:    p.Name,
			Kind:    configform.KindOf(p.Field),
			Options: p.Field.Enum,
			Minimum: p.Field.Minimum,
			Maximum: p.Field.Maximum,
		}
		details := f.Hint()
		if f.Kind == configform.Enum {
			details = strings.Join(f.Options, " | ")
		}
		name := p.Name
		if d.ConfigSchema.IsRequired(p.Name) {
			name += " *"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, f.Kind, formatDefault(p.Field.Default), details)
	}
	_ = w.Flush()
}

func formatDefault(v any) string {
	if v == nil {
		return ""
	}
	if s := configform.FormatNumber(v); s != "" {
		return s
	}
	return fmt.Sprint(v)
}
