// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// noheap-bench drives the bump allocator, the double buffered cell, and the
// schema-driven JSON decoder together against a single static buffer, to
// exercise them the way a latency-sensitive caller would: no allocation on
// the hot path, and each worker the single writer of its own progress cell.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"example.com/noheap/bump"
	"example.com/noheap/dbcell"
	"example.com/noheap/internal/debug"
	"example.com/noheap/schemajson"
)

const defaultConfig = `
fields { key: "chunk_bytes" value { number_value: 64 } }
fields { key: "chunk_align" value { number_value: 8 } }
`

var (
	workers    = flag.Int("workers", 4, "number of concurrent allocator workers")
	bufBytes   = flag.Int("bytes", 1<<16, "size of the arena's backing buffer")
	rounds     = flag.Int("rounds", 20000, "allocation rounds per worker")
	config     = flag.String("config", defaultConfig, "textproto google.protobuf.Struct worker configuration")
	labelsFlag = flag.String("labels", "[]", "JSON array of per-worker label strings, one per -workers")
)

// progress is published by each worker through its own [dbcell.Cell] as it
// runs; the cells are read and summed once every worker has finished.
type progress struct {
	completed int64
	oom       int64
}

// summary is the run's final report, in a shape that is comfortable to
// render as both YAML and protobuf JSON.
type summary struct {
	RunID        string        `yaml:"run_id"`
	Workers      int           `yaml:"workers"`
	BufferBytes  int           `yaml:"buffer_bytes"`
	RoundsEach   int           `yaml:"rounds_each"`
	ChunkBytes   int64         `yaml:"chunk_bytes"`
	ChunkAlign   int64         `yaml:"chunk_align"`
	Completed    int64         `yaml:"completed"`
	OutOfMemory  int64         `yaml:"out_of_memory"`
	Elapsed      time.Duration `yaml:"-"`
	ElapsedHuman string        `yaml:"elapsed"`
}

func run() error {
	flag.Parse()

	var cfg structpb.Struct
	if err := prototext.Unmarshal([]byte(*config), &cfg); err != nil {
		return fmt.Errorf("parsing -config: %w", err)
	}
	chunkBytes := int64(cfg.Fields["chunk_bytes"].GetNumberValue())
	if chunkBytes == 0 {
		chunkBytes = 64
	}
	chunkAlign := int64(cfg.Fields["chunk_align"].GetNumberValue())
	if chunkAlign == 0 {
		chunkAlign = 8
	}

	labels := make([]schemajson.Optional[string], *workers)
	items := make([]schemajson.Schema, *workers)
	for i := range items {
		items[i] = schemajson.Str(&labels[i])
	}
	if err := schemajson.Decode([]byte(*labelsFlag), schemajson.Array(items), 1); err != nil {
		return fmt.Errorf("parsing -labels: %w", err)
	}

	arena := bump.NewAtomicArena(make([]byte, *bufBytes))
	cells := make([]*dbcell.Cell[progress], *workers)
	for w := range cells {
		cells[w] = dbcell.New(progress{})
	}

	g, ctx := errgroup.WithContext(context.Background())
	start := time.Now()

	for w := 0; w < *workers; w++ {
		label, _ := labels[w].Get()
		cell := cells[w]
		g.Go(func() error {
			debug.Log(nil, "worker", "%q starting", label)
			var completed, oom int64
			for i := 0; i < *rounds; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				p, err := arena.Alloc(int(chunkBytes), int(chunkAlign))
				if err == bump.ErrOutOfMemory {
					oom++
					continue
				}
				if err != nil {
					return err
				}
				_ = p
				arena.Release(int(chunkBytes))
				completed++

				if completed%256 == 0 {
					cell.WriteUncontended(progress{completed: completed, oom: oom})
				}
			}
			cell.WriteUncontended(progress{completed: completed, oom: oom})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	var final progress
	for _, cell := range cells {
		p := cell.Read()
		final.completed += p.completed
		final.oom += p.oom
	}
	head, live := arena.Stats()
	if live != 0 {
		return fmt.Errorf("arena leaked %d allocations (head at %d)", live, head)
	}

	s := summary{
		RunID:       uuid.NewString(),
		Workers:     *workers,
		BufferBytes: *bufBytes,
		RoundsEach:  *rounds,
		ChunkBytes:  chunkBytes,
		ChunkAlign:  chunkAlign,
		Completed:   final.completed,
		OutOfMemory: final.oom,
		Elapsed:     time.Since(start),
	}
	s.ElapsedHuman = s.Elapsed.String()

	out, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	os.Stdout.Write(out)

	pb, err := summaryToProto(s)
	if err != nil {
		return err
	}
	text, err := protojson.Marshal(pb)
	if err != nil {
		return err
	}
	fmt.Println(string(text))

	return nil
}

// summaryToProto converts a summary into a [structpb.Struct], so the same
// report can be emitted as protobuf JSON for tooling that only speaks
// protobuf's well-known types.
func summaryToProto(s summary) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"run_id":       s.RunID,
		"workers":      float64(s.Workers),
		"buffer_bytes": float64(s.BufferBytes),
		"rounds_each":  float64(s.RoundsEach),
		"chunk_bytes":  float64(s.ChunkBytes),
		"chunk_align":  float64(s.ChunkAlign),
		"completed":    float64(s.Completed),
		"out_of_memory": float64(s.OutOfMemory),
		"elapsed":      s.ElapsedHuman,
	})
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "noheap-bench:", err)
		os.Exit(1)
	}
}
