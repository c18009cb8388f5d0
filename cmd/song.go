package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/jsphweid/ctransposer/db"
	"github.com/jsphweid/ctransposer/file"
	"github.com/jsphweid/ctransposer/logging"
	"github.com/jsphweid/ctransposer/model"
	"github.com/jsphweid/ctransposer/song"
)

func transposeLines(lines []string, semitones int, auto bool, opts song.Options) song.Result {
	if auto {
		return song.AutoTranspose(lines, opts)
	}
	return song.Transpose(lines, semitones, opts)
}

func warningTexts(warnings []error) []string {
	res := make([]string, 0, len(warnings))
	for _, w := range warnings {
		res = append(res, w.Error())
	}
	return res
}

// joinLike joins lines, ending with a newline only when original did.
func joinLike(original string, lines []string) string {
	res := strings.Join(lines, "\n")
	if strings.HasSuffix(original, "\n") && res != "" {
		res += "\n"
	}
	return res
}

func newReport(name, digest string, res song.Result) model.Report {
	return model.Report{
		Digest:           digest,
		Semitones:        res.Semitones,
		Name:             name,
		DifficultyBefore: res.DifficultyBefore,
		DifficultyAfter:  res.DifficultyAfter,
		Chords:           res.Chords,
		CreatedAt:        time.Now().UTC(),
	}
}

// runTranspose handles one transpose request for the HTTP and live
// endpoints. The report is saved when store is not nil.
func runTranspose(ctx context.Context, store db.Store, req model.TransposeRequest) (model.TransposeResponse, error) {
	lines := file.SplitLines(req.Text)
	res := transposeLines(lines, req.Semitones, req.Auto, song.Options{Flats: req.Flats})

	name := req.Name
	if name == "" {
		name = "untitled"
	}
	logging.Warnings(ctx, name, res.Warnings)

	digest := file.Digest(lines)
	if store != nil {
		if err := store.SaveReport(ctx, newReport(name, digest, res)); err != nil {
			return model.TransposeResponse{}, err
		}
	}

	return model.TransposeResponse{
		Text:             joinLike(req.Text, res.Lines),
		Semitones:        res.Semitones,
		DifficultyBefore: res.DifficultyBefore,
		DifficultyAfter:  res.DifficultyAfter,
		Chords:           res.Chords,
		Digest:           digest,
		Warnings:         warningTexts(res.Warnings),
	}, nil
}
