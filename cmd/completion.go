package cmd

import (
	"flag"
	"log"

	"github.com/etnz/tradingpost/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the commands of c and their flags for shell
// completion. The top-level flags are read from flag.CommandLine.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		switch cmd.Name() {
		case "topic":
			topics, err := docs.GetAllTopics()
			if err != nil {
				log.Printf("cannot list the topics to complete: %v", err)
			}
			sub.Args = predict.Set(append(topics, "*"))
		case "help":
			sub.Args = predict.Something
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

// flagPredictors predicts the values of the flags of fs.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		switch f.Name {
		case "config":
			flags[f.Name] = predict.Files("*.toml")
		case "backend":
			flags[f.Name] = predict.Set{"file", "sqlite", "redis"}
		case "data-dir":
			flags[f.Name] = predict.Dirs("*")
		default:
			flags[f.Name] = predict.Something
		}
	})
	return flags
}
