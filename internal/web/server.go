// Package web serves the upload front end: one page per transform,
// accepting an SSC file and returning the mutated copy as a download.
package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"

	"git.lost.host/meutraa/minefix/internal/fakes"
	"git.lost.host/meutraa/minefix/internal/history"
	"git.lost.host/meutraa/minefix/internal/parser"
	"git.lost.host/meutraa/minefix/internal/scroll"
	"git.lost.host/meutraa/minefix/internal/sim"
)

type Server struct {
	Parser parser.Parser
	Store  *history.Store
}

func (s *Server) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.index)
	mux.HandleFunc("/scroll-normalizer", s.scrollNormalizer)
	mux.HandleFunc("/fake-mines", s.fakeMines)
	mux.HandleFunc("/history", s.runHistory)
	return mux
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/scroll-normalizer", http.StatusFound)
}

// readUpload pulls the uploaded SSC out of the multipart form and
// parses it. SSC files are virtually always UTF-8, so the bytes are
// used as-is.
func (s *Server) readUpload(r *http.Request) (string, []byte, *sim.Simfile, error) {
	file, header, err := r.FormFile("sscfile")
	if nil != err {
		return "", nil, nil, fmt.Errorf("missing sscfile upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if nil != err {
		return "", nil, nil, err
	}

	simfile, err := s.Parser.Parse(data)
	if nil != err {
		return "", nil, nil, err
	}

	name := header.Filename
	if name == "" {
		name = "file.ssc"
	}
	return name, data, simfile, nil
}

func (s *Server) sendSimfile(w http.ResponseWriter, name, suffix string, simfile *sim.Simfile) {
	download := strings.Replace(name, ".ssc", suffix+".ssc", 1)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download))
	if _, err := w.Write(s.Parser.Serialize(simfile)); nil != err {
		log.Println("unable to write response", err)
	}
}

func (s *Server) scrollNormalizer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		render(w, scrollPage, nil)
		return
	}

	name, _, simfile, err := s.readUpload(r)
	if nil != err {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := scroll.Fixed(simfile); nil != err {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.sendSimfile(w, name, "-normalized", simfile)
}

func (s *Server) fakeMines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		render(w, fakeMinesPage, nil)
		return
	}

	name, data, simfile, err := s.readUpload(r)
	if nil != err {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := fakes.Options{
		AllowSplitTiming:  r.FormValue("allow_split_timing") != "",
		AllowSimultaneous: r.FormValue("allow_simultaneous") != "",
	}

	actions, err := fakes.Apply(simfile, opts)
	if nil != err {
		// The conflict report is the product here, not a failure page.
		if _, ok := err.(*fakes.ConflictError); ok {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			fmt.Fprint(w, err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if fakes.AnyMutation(actions) && nil != s.Store {
		texts := make([]string, len(actions))
		for i, a := range actions {
			texts[i] = a.String()
		}
		s.Store.Save("fake-mines", name, data, texts)
	}

	s.sendSimfile(w, name, "-fakemines", simfile)
}

func (s *Server) runHistory(w http.ResponseWriter, r *http.Request) {
	runs, err := s.Store.Recent(50)
	if nil != err {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	render(w, historyPage, runs)
}

func render(w http.ResponseWriter, t *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.Execute(w, data); nil != err {
		log.Println("unable to render template", err)
	}
}
