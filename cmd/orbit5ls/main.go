// Package main provides a command-line utility to inspect orbit simulation
// data files. It lists the versioned input groups of each category, marks the
// active one, and optionally prints run records with their input provenance.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/scigolib/orbit5"
)

func main() {
	runs := flag.Bool("runs", false, "List run records and their input provenance")
	archive := flag.Bool("archive", false, "Treat the input as an archive instead of an HDF5 file")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: orbit5ls [flags] <data file>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}

	s, err := openStore(args[0], *archive)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", args[0], err)
	}

	for _, cat := range orbit5.AllCategories {
		if cat == orbit5.Metadata || cat == orbit5.Results {
			continue
		}
		printCategory(s, cat)
	}
	printMetadata(s)
	if *runs {
		printRuns(s)
	}
}

func openStore(filename string, archive bool) (orbit5.Store, error) {
	if archive {
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Printf("Failed to close file: %v", err)
			}
		}()
		return orbit5.ReadArchive(f)
	}
	return orbit5.OpenFile(filename)
}

func printCategory(s orbit5.Store, cat orbit5.Category) {
	refs, err := orbit5.Resolve(s, cat)
	if err != nil {
		if errors.Is(err, orbit5.ErrNotFound) {
			return
		}
		log.Fatalf("Failed to resolve %s: %v", cat, err)
	}
	fmt.Printf("%s:\n", cat)
	active, _ := orbit5.ActiveQID(s, cat)
	for _, ref := range refs {
		marker := " "
		if ref.QID == active {
			marker = "*"
		}
		desc, err := orbit5.Describe(s, cat, ref.QID)
		if err != nil {
			desc = ""
		}
		fmt.Printf("  %s %-24s %s  %s\n",
			marker, ref.Name, ref.Date.Format("2006-01-02 15:04:05"), desc)
	}
}

func printMetadata(s orbit5.Store) {
	contents, err := orbit5.ReadAll(s, orbit5.Metadata)
	if err != nil {
		log.Fatalf("Failed to read metadata: %v", err)
	}
	if len(contents.Metadata) == 0 {
		return
	}
	fmt.Println("metadata:")
	keys := make([]string, 0, len(contents.Metadata))
	for k := range contents.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s = %v\n", k, contents.Metadata[k])
	}
}

func printRuns(s orbit5.Store) {
	recs, err := orbit5.ReadRuns(s)
	if err != nil {
		if errors.Is(err, orbit5.ErrNotFound) {
			return
		}
		log.Fatalf("Failed to read runs: %v", err)
	}
	qids := make([]string, 0, len(recs))
	for q := range recs {
		qids = append(qids, string(q))
	}
	sort.Strings(qids)
	fmt.Println("runs:")
	for _, q := range qids {
		rec := recs[orbit5.QID(q)]
		fmt.Printf("  run-%s  %s  %s\n", rec.QID, rec.Date.Format("2006-01-02 15:04:05"), rec.Description)
		fmt.Printf("    inputs: bfield=%s efield=%s marker=%s options=%s plasma=%s wall=%s\n",
			rec.Inputs.BField, rec.Inputs.EField, rec.Inputs.Marker,
			rec.Inputs.Options, rec.Inputs.Plasma, rec.Inputs.Wall)
		var tables []string
		for _, t := range []struct {
			name string
			p    orbit5.Payload
		}{
			{"inistate", rec.IniState},
			{"endstate", rec.EndState},
			{"dists", rec.Dists},
			{"orbits", rec.Orbits},
		} {
			if t.p != nil {
				tables = append(tables, t.name)
			}
		}
		if len(tables) > 0 {
			fmt.Printf("    tables: %s\n", strings.Join(tables, ", "))
		}
	}
}
