// titleform renders a state duplicate-title application from a saved
// extraction result JSON file.
//
// Usage:
//
//	titleform -input result.json -vin 1481 [-out dir]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/titledesk/title-review/internal/entity"
	"github.com/titledesk/title-review/internal/stateform"
)

func main() {
	input := flag.String("input", "", "extraction result JSON file")
	vin := flag.String("vin", "", "last 4 VIN digits of the vehicle to render")
	out := flag.String("out", ".", "output directory")
	flag.Parse()

	if *input == "" || *vin == "" {
		flag.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		fatalf("read input: %v", err)
	}
	var result entity.ExtractionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		fatalf("parse input: %v", err)
	}

	var vehicle *entity.VehicleTitle
	for i := range result.VehicleTitles {
		if result.VehicleTitles[i].VINEnding == *vin {
			vehicle = &result.VehicleTitles[i]
			break
		}
	}
	if vehicle == nil {
		fatalf("no vehicle with VIN ending %s in %s", *vin, *input)
	}

	filled := stateform.Prefill(vehicle)
	path := filepath.Join(*out, filled.Filename())
	if err := os.WriteFile(path, []byte(filled.Render(time.Now())), 0o644); err != nil {
		fatalf("write form: %v", err)
	}
	fmt.Printf("wrote %s (%s)\n", path, filled.Template.Name)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
