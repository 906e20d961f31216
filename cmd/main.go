// Command rendezdemo exercises the rendez package end to end: a
// producer/consumer pair over a buffered Chan, coordinated by a Scope,
// with a chanx.Map pipeline layered on top.
package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kholmatov/rendez"
	"github.com/kholmatov/rendez/chanx"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	jobs := rendez.New[int](4, rendez.WithName("jobs"))

	start := time.Now()
	err := rendez.Run(ctx, func(sp rendez.Spawner) {
		sp.Go("producer", func(ctx context.Context) error {
			defer jobs.Close()
			for i := 0; i < 10; i++ {
				if err := jobs.Send(i); err != nil {
					return err
				}
			}
			return nil
		})

		labels := chanx.Map(ctx, jobs, func(n int) string {
			return "job-" + strconv.Itoa(n)
		})

		sp.Go("consumer", func(ctx context.Context) error {
			return rendez.ForEach(labels, func(s string) {
				fmt.Println(s)
			})
		})
	}, rendez.WithPolicy(rendez.FailFast), rendez.WithPanicAsError())

	if err != nil {
		fmt.Println("final error:", err)
	}
	fmt.Println("elapsed:", time.Since(start))
}
