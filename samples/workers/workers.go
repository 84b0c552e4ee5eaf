package main

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/cschleiden/go-cancel"
	"github.com/cschleiden/go-cancel/registry"
	"github.com/cschleiden/go-cancel/worker"
)

func main() {
	r := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String("go-cancel sample"),
		attribute.String("environment", "sample"),
	)

	stdoutexp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		panic(err)
	}

	tp := trace.NewTracerProvider(
		trace.WithSyncer(stdoutexp),
		trace.WithResource(r),
	)
	defer tp.Shutdown(context.Background())

	// Register the operation so it can be canceled by ID, for instance from
	// an admin endpoint.
	reg := registry.New()

	token := cancel.WithTimeout(10 * time.Second)
	id := reg.Add(token)
	defer reg.Remove(id)

	g := worker.New(token, worker.WithName("sample"), worker.WithTracerProvider(tp))

	for i := 0; i < 3; i++ {
		g.Go(func(token *cancel.Token) error {
			for {
				if err := token.Check(); err != nil {
					return err
				}

				time.Sleep(50 * time.Millisecond)
			}
		})
	}

	// Cancel through the registry after a while, as an outside party would
	go func() {
		time.Sleep(time.Second)
		reg.Cancel(id)
	}()

	err = g.Wait()

	log.Println("All workers stopped:", err)
}
