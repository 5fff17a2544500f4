package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"tiquete/internal"
	"tiquete/internal/catalog"
	"tiquete/internal/config"
	"tiquete/internal/logger"
	"tiquete/internal/pipeline"
	"tiquete/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	must(err)
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	index, err := catalog.BuildIndex(cfg.SynonymsFile)
	if err != nil {
		if index == nil {
			must(err)
		}
		logger.Warn("synonym table has conflicts, first group kept", "error", err)
	}
	canon := pipeline.NewCanonicalizer(index)
	classifier := pipeline.NewClassifier(vendorList(cfg.VendorPriority))
	engine := pipeline.NewEngine(classifier)

	cmd := os.Args[1]
	args := os.Args[2:]
	switch cmd {
	case "extract":
		fs := ff.NewFlagSet(cmd)
		input := fs.StringLong("input", "", "receipt file path")
		inType := fs.StringLong("type", "", "text|pdf|eml|html (default: from extension)")
		vendor := fs.StringLong("vendor", "", "skip detection and use this vendor")
		save := fs.BoolLong("save", "store the receipt and canonicalize against stored names")
		out := fs.StringLong("out", "", "optional xlsx output path")
		asJSON := fs.BoolLong("json", "print products as JSON")
		parse(fs, args)
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		hint := parseHint(*vendor)
		kind := internal.SourceKind(strings.ToLower(*inType))
		if kind == "" {
			kind = pipeline.SourceKindFromPath(*input)
		}

		var rec internal.ReceiptRecord
		if *save {
			store, err := storage.Open(cfg)
			must(err)
			defer store.Close()

			blob, err := os.ReadFile(*input)
			must(err)
			res, err := pipeline.NewProcessingService(store, engine, canon).Process(*input, kind, blob, hint)
			must(err)
			rec = internal.ReceiptRecord{ID: res.ReceiptID, Source: *input, Vendor: res.Vendor, Products: pipeline.ProductRows(res.Products)}
			if res.Duplicate {
				fmt.Printf("receipt already stored id=%d\n", res.ReceiptID)
			}
		} else {
			res, err := engine.ExtractFromFile(kind, *input, hint)
			must(err)
			products := canon.CanonicalizeAll(res.Products, nil)
			rec = internal.ReceiptRecord{Source: *input, Vendor: res.Vendor, Products: pipeline.ProductRows(products)}
		}

		printReceipt(rec, *asJSON)
		if strings.TrimSpace(*out) != "" {
			must(pipeline.ExportReceiptToXLSX(rec, *out))
			fmt.Printf("exported %d rows to %s\n", len(rec.Products), *out)
		}
	case "canonicalize":
		fs := ff.NewFlagSet(cmd)
		name := fs.StringLong("name", "", "product description to canonicalize")
		existing := fs.StringLong("existing", "", "comma separated names already in use")
		parse(fs, args)
		if strings.TrimSpace(*name) == "" {
			must(fmt.Errorf("--name is required"))
		}
		fmt.Println(canon.Canonicalize(*name, splitComma(*existing)))
	case "export:xlsx":
		fs := ff.NewFlagSet(cmd)
		receiptID := fs.IntLong("receiptId", 0, "stored receipt id")
		out := fs.StringLong("out", "", "output xlsx path")
		parse(fs, args)
		if *receiptID == 0 || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--receiptId and --out are required"))
		}
		store, err := storage.Open(cfg)
		must(err)
		defer store.Close()

		rec, err := store.GetReceipt(*receiptID)
		if errors.Is(err, storage.ErrNotFound) {
			must(fmt.Errorf("no receipt with id=%d", *receiptID))
		}
		must(err)
		must(pipeline.ExportReceiptToXLSX(*rec, *out))
		fmt.Printf("exported %d rows to %s\n", len(rec.Products), *out)
	case "vendors":
		for i, v := range classifier.Order() {
			fmt.Printf("%d. %s [%s]\n", i+1, v, v.Tag())
		}
		fmt.Printf("-. %s [%s] (fallback)\n", internal.VendorGeneric, internal.VendorGeneric.Tag())
	default:
		usage()
		os.Exit(1)
	}
}

func parse(fs *ff.FlagSet, args []string) {
	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("TIQUETE")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		if errors.Is(err, ff.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printReceipt(rec internal.ReceiptRecord, asJSON bool) {
	if asJSON {
		blob, err := json.MarshalIndent(rec, "", "  ")
		must(err)
		fmt.Println(string(blob))
		return
	}
	for _, p := range rec.Products {
		fmt.Printf("%3d  %10d  %s\n", p.LineNo, p.Price, p.Description)
	}
	fmt.Printf("vendor=%s items=%d total=%d\n", rec.Vendor, len(rec.Products), rec.Total())
}

func parseHint(value string) internal.VendorType {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	v, ok := internal.ParseVendor(value)
	if !ok {
		must(fmt.Errorf("unknown vendor: %s", value))
	}
	return v
}

func vendorList(names []string) []internal.VendorType {
	vendors, unknown := pipeline.ParseVendorList(names)
	for _, n := range unknown {
		logger.Warn("ignoring unknown vendor in priority list", "vendor", n)
	}
	return vendors
}

func splitComma(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func usage() {
	fmt.Println("usage: tiquete <command>")
	fmt.Println("commands:")
	fmt.Println("  extract --input=receipt.txt [--type=text|pdf|eml|html] [--vendor=exito] [--save] [--out=./out/receipt.xlsx] [--json]")
	fmt.Println("  canonicalize --name=\"Habichuela A Gra [Éxito]\" [--existing=\"Habichuela A Granel\"]")
	fmt.Println("  export:xlsx --receiptId=1 --out=./out/receipt.xlsx")
	fmt.Println("  vendors")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
