package main

import (
	"os"

	"github.com/mncc8337/shrimpy/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "shrimpy"
	app.Usage = "interactive GPU path tracing viewer"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:        "compile",
			Usage:       "compile a mesh into a GPU-ready scene buffer",
			ArgsUsage:   "scene.obj",
			Description: "Parse a wavefront object file, build the triangle BVH and write the packed scene buffer to disk.",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "scene.bin",
					Usage: "output file for the packed scene buffer",
				},
				cli.StringFlag{
					Name:  "color",
					Value: "0.7,0.7,0.7",
					Usage: "mesh material color as r,g,b",
				},
				cli.Float64Flag{
					Name:  "roughness",
					Value: 1.0,
					Usage: "mesh material roughness in [0,1]",
				},
				cli.Float64Flag{
					Name:  "ior",
					Usage: "treat the mesh material as a dielectric with this index of refraction",
				},
				cli.Float64Flag{
					Name:  "emission",
					Usage: "mesh material emission strength",
				},
			},
			Action: cmd.CompileScene,
		},
		{
			Name:        "info",
			Usage:       "print statistics for a compiled scene",
			ArgsUsage:   "scene.obj",
			Description: "Parse a wavefront object file, build the triangle BVH and print storage and tree statistics.",
			Action:      cmd.SceneInfo,
		},
	}

	app.Run(os.Args)
}
