package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

func Pprint(i interface{}) {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}

func FloatPointer(f float64) *float64 {
	return &f
}

func DecimalPointer(d decimal.Decimal) *decimal.Decimal {
	return &d
}

type Secrets struct {
	Port        int            `json:"port"`
	PriceSource string         `json:"priceSource"` // binance | yahoo | alpaca
	Binance     BinanceSecrets `json:"binance"`
	Valr        ValrSecrets    `json:"valr"`
	Alpaca      AlpacaSecrets  `json:"alpaca"`
}

type BinanceSecrets struct {
	Endpoint string `json:"endpoint"`
}

type ValrSecrets struct {
	WsEndpoint string `json:"wsEndpoint"`
	Pair       string `json:"pair"`
}

type AlpacaSecrets struct {
	ApiKey    string `json:"apiKey"`
	ApiSecret string `json:"apiSecret"`
	Endpoint  string `json:"endpoint"`
}

func LoadSecrets() (*Secrets, error) {
	secretsFile := "/go/src/app/secrets.json"
	if os.Getenv("FUND_ENV") == "dev" {
		secretsFile = "secrets-dev.json"
	} else if os.Getenv("FUND_ENV") == "test" {
		secretsFile = "secrets-test.json"
	}
	f, err := os.ReadFile(secretsFile)
	if err != nil {
		return nil, fmt.Errorf("could not open secrets.json: %w", err)
	}

	secrets := Secrets{}
	err = json.Unmarshal(f, &secrets)
	if err != nil {
		return nil, err
	}

	if secrets.Port == 0 {
		secrets.Port = 8000
	}
	if secrets.PriceSource == "" {
		secrets.PriceSource = "binance"
	}
	if secrets.Binance.Endpoint == "" {
		secrets.Binance.Endpoint = "https://api.binance.com"
	}
	if secrets.Valr.WsEndpoint == "" {
		secrets.Valr.WsEndpoint = "wss://api.valr.com/ws/trade"
	}
	if secrets.Valr.Pair == "" {
		secrets.Valr.Pair = "USDTZAR"
	}

	return &secrets, nil
}
