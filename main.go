package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"git.lost.host/meutraa/minefix/internal/config"
	"git.lost.host/meutraa/minefix/internal/fakes"
	"git.lost.host/meutraa/minefix/internal/history"
	"git.lost.host/meutraa/minefix/internal/parser"
	"git.lost.host/meutraa/minefix/internal/scroll"
	"git.lost.host/meutraa/minefix/internal/sim"
	"git.lost.host/meutraa/minefix/internal/web"
	"golang.org/x/term"
)

func main() {
	config.Parse()
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

// resolveSimfile accepts a file or a song directory. For a directory,
// the SSC inside it is the input; an SM sitting alongside triggers the
// out-of-sync warning unless suppressed.
func resolveSimfile(input string) (sscPath, smPath string, err error) {
	info, err := os.Stat(input)
	if nil != err {
		return "", "", err
	}
	if !info.IsDir() {
		return input, "", nil
	}

	if err := filepath.Walk(input, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".ssc":
			sscPath = p
		case ".sm":
			smPath = p
		}
		return nil
	}); nil != err {
		return "", "", fmt.Errorf("unable to walk song directory: %w", err)
	}

	if sscPath == "" {
		return "", "", errors.New("simfile directory has no SSC file")
	}
	return sscPath, smPath, nil
}

// maybePrintSMWarning warns when the SSC has split timing while an SM
// file shares the directory: the StepMania editor stops saving the SM
// in that case and the two drift apart.
func maybePrintSMWarning(s *sim.Simfile) bool {
	for _, chart := range s.Charts {
		if chart.HasTiming() {
			fmt.Println("WARNING: there is an SM file in this directory, but the SSC has split timing.")
			fmt.Println("The StepMania editor will not save an SM file in this case,")
			fmt.Println("and the two files may become out of sync.")
			fmt.Println("Delete the SM file or pass --ignore-sm to suppress this warning.")
			fmt.Println()
			return true
		}
	}
	return false
}

func printActions(actions []fakes.Action) {
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	switch {
	case fakes.AnyMutation(actions):
		fmt.Println("Actions taken:")
	case len(actions) > 0:
		fmt.Println("No actions taken:")
	default:
		fmt.Println("No actions taken")
	}
	for _, a := range actions {
		if a.Noop && interactive {
			fmt.Printf("    \033[2m%v\033[0m\n", a)
		} else {
			fmt.Printf("    %v\n", a)
		}
	}
}

func run() error {
	var psr parser.Parser = &parser.DefaultParser{}

	store := &history.Store{}
	if err := store.Init(*config.Database); nil != err {
		return err
	}
	defer store.Deinit()

	if *config.Listen != "" {
		srv := &web.Server{Parser: psr, Store: store}
		log.Println("listening on", *config.Listen)
		return http.ListenAndServe(*config.Listen, srv.Router())
	}

	if *config.Simfile == "" {
		return errors.New("a simfile argument is required unless --listen is given")
	}

	sscPath, smPath, err := resolveSimfile(*config.Simfile)
	if nil != err {
		return err
	}

	data, err := os.ReadFile(sscPath)
	if nil != err {
		return err
	}
	simfile, err := psr.Parse(data)
	if nil != err {
		return err
	}

	smPresent := smPath != "" && !*config.IgnoreSM
	warned := false
	if smPresent {
		// If the SSC already has split timing, warn before any errors.
		warned = maybePrintSMWarning(simfile)
	}

	tool := "fake-mines"
	var actions []fakes.Action
	if *config.Scroll {
		tool = "scroll-normalizer"
		if err := scroll.Fixed(simfile); nil != err {
			return err
		}
		actions = []fakes.Action{{Text: "normalize scroll rates across BPM changes"}}
	} else {
		actions, err = fakes.Apply(simfile, fakes.Options{
			AllowSimultaneous: *config.AllowSimultaneous,
			AllowSplitTiming:  *config.AllowSplitTiming,
		})
		var conflict *fakes.ConflictError
		if errors.As(err, &conflict) {
			fmt.Print(conflict.Error())
			return errors.New("simultaneous mines and notes found; no changes written")
		}
		if nil != err {
			return err
		}
	}

	// If this run gave the SSC split timing, warn now.
	if smPresent && !warned {
		maybePrintSMWarning(simfile)
	}

	printActions(actions)

	if !fakes.AnyMutation(actions) {
		return nil
	}
	if *config.DryRun {
		fmt.Println("Not writing changes for dry run")
		return nil
	}

	backup := sscPath + "~"
	fmt.Printf("Writing changes to %v & backing up original file to %v\n", sscPath, backup)
	if err := os.WriteFile(backup, data, 0644); nil != err {
		return fmt.Errorf("unable to write backup file: %w", err)
	}
	if err := os.WriteFile(sscPath, psr.Serialize(simfile), 0644); nil != err {
		return fmt.Errorf("unable to write simfile: %w", err)
	}

	texts := make([]string, len(actions))
	for i, a := range actions {
		texts[i] = a.String()
	}
	store.Save(tool, filepath.Base(sscPath), data, texts)
	return nil
}
