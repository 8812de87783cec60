package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"fundrebalance/cmd"
)

func main() {
	fmt.Println(os.Getenv("commit_hash"))
	apiHandler, secrets, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go apiHandler.OrderBookRepository.Start(ctx)

	err = apiHandler.StartApi(secrets.Port)
	if err != nil {
		log.Fatal(err)
	}
}
