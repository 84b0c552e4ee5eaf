package main

import (
	"log"
	"time"

	"github.com/cschleiden/go-cancel"
)

func main() {
	token := cancel.WithTimeout(2 * time.Second)

	processed, err := process(token)

	log.Println("Processed", processed, "items, stopped with:", err)
}

func process(token *cancel.Token) (int, error) {
	processed := 0

	for {
		if err := token.Check(); err != nil {
			return processed, err
		}

		// Simulate a piece of work
		time.Sleep(100 * time.Millisecond)
		processed++
	}
}
