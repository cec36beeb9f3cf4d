// estatectl drives the REST gateway from the command line: accounts,
// deposits, real-estate listings, offers, signatures, and the final
// ownership transfer.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const usage = `usage:
  estatectl account create --owner <name>
  estatectl account show --id <account_id>
  estatectl account deposit --id <account_id> --amount <n>
  estatectl estate create --owner <account_id> [--description <text>] [--price <n>] [--address <text>] [--area <text>]
  estatectl estate show --id <real_estate_id>
  estatectl estate transfer --id <real_estate_id> --offer <offer_id>
  estatectl offer create --estate <real_estate_id> --buyer <account_id> --amount <n>
  estatectl offer show --id <offer_id>
  estatectl offer sign --id <offer_id> --as buyer|seller

the gateway base URL comes from --gateway or GATEWAY_URL (default http://localhost:3000)`

func main() {
	if len(os.Args) < 3 {
		fail(usage)
	}
	switch os.Args[1] + " " + os.Args[2] {
	case "account create":
		runAccountCreate(os.Args[3:])
	case "account show":
		runShow(os.Args[3:], "/accounts/")
	case "account deposit":
		runDeposit(os.Args[3:])
	case "estate create":
		runEstateCreate(os.Args[3:])
	case "estate show":
		runShow(os.Args[3:], "/real_estate/")
	case "estate transfer":
		runTransfer(os.Args[3:])
	case "offer create":
		runOfferCreate(os.Args[3:])
	case "offer show":
		runShow(os.Args[3:], "/offers/")
	case "offer sign":
		runSign(os.Args[3:])
	default:
		fail(usage)
	}
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.SetOutput(os.Stderr)
	gateway := fs.String("gateway", "", "gateway base URL (defaults to GATEWAY_URL)")
	return fs, gateway
}

func runAccountCreate(args []string) {
	fs, gateway := newFlagSet("account create")
	owner := fs.String("owner", "", "account owner name")
	parse(fs, args)
	if *owner == "" {
		fail("--owner is required")
	}
	post(*gateway, "/accounts", map[string]any{"ownerName": *owner})
}

func runShow(args []string, prefix string) {
	fs, gateway := newFlagSet("show")
	id := fs.String("id", "", "record id")
	parse(fs, args)
	if *id == "" {
		fail("--id is required")
	}
	get(*gateway, prefix+*id)
}

func runDeposit(args []string) {
	fs, gateway := newFlagSet("account deposit")
	id := fs.String("id", "", "account id")
	amount := fs.Float64("amount", 0, "deposit amount")
	parse(fs, args)
	if *id == "" {
		fail("--id is required")
	}
	post(*gateway, "/accounts/"+*id+"/deposits", map[string]any{"amount": *amount})
}

func runEstateCreate(args []string) {
	fs, gateway := newFlagSet("estate create")
	owner := fs.String("owner", "", "owner account id")
	description := fs.String("description", "", "description")
	price := fs.Float64("price", 0, "listing price")
	address := fs.String("address", "", "address")
	area := fs.String("area", "", "total area")
	parse(fs, args)
	if *owner == "" {
		fail("--owner is required")
	}
	post(*gateway, "/real_estate", map[string]any{
		"ownerAccountId": *owner,
		"description":    *description,
		"price":          *price,
		"address":        *address,
		"totalArea":      *area,
	})
}

func runTransfer(args []string) {
	fs, gateway := newFlagSet("estate transfer")
	id := fs.String("id", "", "real estate id")
	offer := fs.String("offer", "", "offer id")
	parse(fs, args)
	if *id == "" || *offer == "" {
		fail("--id and --offer are required")
	}
	post(*gateway, "/real_estate/"+*id+"/transfers", map[string]any{"offerId": *offer})
}

func runOfferCreate(args []string) {
	fs, gateway := newFlagSet("offer create")
	estate := fs.String("estate", "", "real estate id")
	buyer := fs.String("buyer", "", "buyer account id")
	amount := fs.Float64("amount", 0, "offer amount")
	parse(fs, args)
	if *estate == "" || *buyer == "" {
		fail("--estate and --buyer are required")
	}
	post(*gateway, "/offers", map[string]any{
		"realEstateId":   *estate,
		"buyerAccountId": *buyer,
		"amount":         *amount,
	})
}

func runSign(args []string) {
	fs, gateway := newFlagSet("offer sign")
	id := fs.String("id", "", "offer id")
	as := fs.String("as", "", "buyer or seller")
	parse(fs, args)
	if *id == "" {
		fail("--id is required")
	}
	if *as != "buyer" && *as != "seller" {
		fail("--as must be buyer or seller")
	}
	post(*gateway, "/offers/"+*id+"/signatures", map[string]any{"signee": *as})
}

func parse(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}
}

func baseURL(flagValue string) string {
	if flagValue != "" {
		return strings.TrimRight(flagValue, "/")
	}
	if env := os.Getenv("GATEWAY_URL"); env != "" {
		return strings.TrimRight(env, "/")
	}
	return "http://localhost:3000"
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

func post(gateway, path string, body map[string]any) {
	payload, err := json.Marshal(body)
	if err != nil {
		fail(err.Error())
	}
	resp, err := httpClient.Post(baseURL(gateway)+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		fail(err.Error())
	}
	printResponse(resp)
}

func get(gateway, path string) {
	resp, err := httpClient.Get(baseURL(gateway) + path)
	if err != nil {
		fail(err.Error())
	}
	printResponse(resp)
}

func printResponse(resp *http.Response) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fail(err.Error())
	}
	var pretty bytes.Buffer
	if json.Indent(&pretty, body, "", "  ") == nil {
		body = pretty.Bytes()
	}
	fmt.Println(string(body))
	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}

func fail(message string) {
	fmt.Fprintln(os.Stderr, message)
	os.Exit(2)
}
