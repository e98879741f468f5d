// Package main is the planrequest CLI: it loads one or more demo scene+plan-request files,
// drives the search harness against a freshly built latticeplan.Environment per request, and
// prints the resulting trajectory or error code. It is the standalone, non-ROS equivalent of
// environment_chain3d.cpp being invoked through a larger planning service.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/motionlattice/planner/latticeplan"
	"github.com/motionlattice/planner/logging"
	"github.com/motionlattice/planner/search"
)

func main() {
	app := &cli.App{
		Name:  "planrequest",
		Usage: "plan a trajectory over a lattice-discretized joint space",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "plan",
				Usage:     "plan a single scene+request file",
				ArgsUsage: "<scene.yaml>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "debug-bfs",
						Usage: "print the BFS distance field's z=0 plane before planning",
					},
				},
				Action: planCommand,
			},
			{
				Name:      "batch",
				Usage:     "plan every scene+request file in a directory concurrently",
				ArgsUsage: "<directory>",
				Action:    batchCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loggerFor(c *cli.Context, name string) logging.Logger {
	if c.Bool("debug") {
		return logging.NewDebugLogger(name)
	}
	return logging.NewLogger(name)
}

func planCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("scene request file required", 1)
	}

	logger := loggerFor(c, "planrequest")
	response := runOne(c.Context, path, logger, c.Bool("debug-bfs"))
	printResponse(c.App.Writer, path, response)
	if response.Err != nil {
		return cli.Exit("plan failed", 1)
	}
	return nil
}

func batchCommand(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		return cli.Exit("directory required", 1)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	logger := loggerFor(c, "planrequest")

	// One Environment per goroutine, never shared: each path gets its own Environment built
	// fresh inside the goroutine, per the Environment's single-threaded-cooperative contract.
	responses := make([]latticeplan.PlanResponse, len(entries))
	paths := make([]string, len(entries))
	group, ctx := errgroup.WithContext(c.Context)
	for i, entry := range entries {
		if entry.IsDir() {
			continue
		}
		i, entry := i, entry
		paths[i] = entry.Name()
		group.Go(func() error {
			responses[i] = runOne(ctx, dir+"/"+entry.Name(), logger.Sublogger(entry.Name()), false)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for i, path := range paths {
		if path == "" {
			continue
		}
		printResponse(c.App.Writer, path, responses[i])
	}
	return nil
}

func runOne(ctx context.Context, path string, logger logging.Logger, debugBFS bool) latticeplan.PlanResponse {
	scene, err := loadSceneRequest(path)
	if err != nil {
		return latticeplan.PlanResponse{Err: err}
	}

	env, err := buildEnvironment(scene, logger)
	if err != nil {
		return latticeplan.PlanResponse{Err: err}
	}

	if err := env.Setup(ctx, latticeplan.PlanRequest{
		GroupName:  scene.GroupName,
		StartState: scene.Start,
		Goal:       scene.Goal,
	}); err != nil {
		return latticeplan.PlanResponse{Err: err}
	}

	if debugBFS {
		for _, row := range env.DebugBFSSlice(0) {
			logger.Infow("bfs plane row", "row", row)
		}
	}

	result, err := search.Run(ctx, search.LatticeAdapter{Env: env}, scene.Epsilon)
	if err != nil {
		return latticeplan.PlanResponse{Err: latticeplan.NewNoPathError(err)}
	}

	trajectory, err := env.ExtractTrajectory(result.Path)
	if err != nil {
		return latticeplan.PlanResponse{Err: err}
	}

	return latticeplan.PlanResponse{Trajectory: trajectory, JointNames: env.JointNames()}
}

func printResponse(w io.Writer, path string, response latticeplan.PlanResponse) {
	if response.Err != nil {
		fmt.Fprintf(w, "%s: error: %v\n", path, response.Err)
		return
	}
	fmt.Fprintf(w, "%s: joints=%v\n", path, response.JointNames)
	for i, waypoint := range response.Trajectory {
		fmt.Fprintf(w, "  [%d] %v\n", i, waypoint)
	}
}
