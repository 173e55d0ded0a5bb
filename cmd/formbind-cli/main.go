package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/renderers/tui"
	"github.com/goliatone/go-formbind/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbind/pkg/schema"
)

func main() {
	source := flag.String("source", "schema.yaml", "OpenAPI document path")
	opID := flag.String("operation", "", "operation ID to bind")
	interactive := flag.Bool("interactive", false, "collect values over terminal prompts")
	output := flag.String("output", "", "output file for the HTML snapshot (stdout if empty)")
	flag.Parse()

	if *opID == "" {
		log.Fatal("missing -operation")
	}

	ctx := context.Background()

	doc, err := schema.DocumentFromFile(*source)
	if err != nil {
		log.Fatalf("load document: %v", err)
	}
	plan, err := schema.PlanForDocument(ctx, doc, *opID)
	if err != nil {
		log.Fatalf("build plan: %v", err)
	}

	f := form.NewMap()
	if err := plan.Apply(f, schema.NewRegistry()); err != nil {
		log.Fatalf("apply plan: %v", err)
	}

	if *interactive {
		session, err := tui.NewSession(f)
		if err != nil {
			log.Fatalf("start session: %v", err)
		}
		if err := session.Run(ctx); err != nil {
			log.Fatalf("collect values: %v", err)
		}
		payload, err := f.DataJSON()
		if err != nil {
			log.Fatalf("serialize data: %v", err)
		}
		fmt.Println(string(payload))
		return
	}

	labels := make(map[string]string, len(plan.Fields))
	help := make(map[string]string, len(plan.Fields))
	for _, field := range plan.Fields {
		labels[field.Name] = field.Label
		help[field.Name] = field.Description
	}

	renderer, err := vanilla.New(vanilla.WithLabels(labels), vanilla.WithHelp(help))
	if err != nil {
		log.Fatalf("configure renderer: %v", err)
	}
	html, err := renderer.Render(ctx, f)
	if err != nil {
		log.Fatalf("render form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, html, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
		return
	}
	fmt.Println(string(html))
}
