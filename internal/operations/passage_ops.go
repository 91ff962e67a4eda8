package operations

import (
	"errors"
	"fmt"

	"theograph/internal/graph"
	"theograph/internal/refs"
)

// PassageOps answers "who is mentioned here" queries against the passage
// index.
type PassageOps struct {
	holder *graph.Holder
}

// PassageResult is the entity membership of one normalized reference.
type PassageResult struct {
	Reference refs.Reference
	Entities  *graph.PassageEntities
}

// EntitiesIn parses a free-text reference and returns every entity whose
// mention range covers it. Parse failures surface as
// graph.ErrReferenceNotRecognized with the parser detail attached so the
// caller can correct the input; an empty entity set is a successful result.
func (p *PassageOps) EntitiesIn(reference string) (*PassageResult, error) {
	ref, err := refs.Parse(reference)
	if err != nil {
		if errors.Is(err, refs.ErrUnparseableReference) {
			return nil, fmt.Errorf("%v: %w", err, graph.ErrReferenceNotRecognized)
		}
		return nil, err
	}

	ix := p.holder.Index()
	entities, err := ix.EntitiesIn(graph.PassageRef{
		Book:       ref.Book,
		Chapter:    ref.Chapter,
		VerseStart: ref.VerseStart,
		VerseEnd:   ref.VerseEnd,
	})
	if err != nil {
		return nil, err
	}

	return &PassageResult{Reference: ref, Entities: entities}, nil
}
