package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"atelier/internal/model"
)

func TestDroppedImages(t *testing.T) {
	a := model.ImageRef{URL: "https://cdn/a.png", PublicID: "a"}
	b := model.ImageRef{URL: "https://cdn/b.png", PublicID: "b"}
	c := model.ImageRef{URL: "https://cdn/c.png", PublicID: "c"}

	tests := []struct {
		name     string
		old      []model.ImageRef
		new      []model.ImageRef
		expected []model.ImageRef
	}{
		{name: "nothing dropped", old: []model.ImageRef{a, b}, new: []model.ImageRef{a, b}, expected: nil},
		{name: "one dropped", old: []model.ImageRef{a, b}, new: []model.ImageRef{a}, expected: []model.ImageRef{b}},
		{name: "all dropped", old: []model.ImageRef{a, b}, new: nil, expected: []model.ImageRef{a, b}},
		{name: "replacement counts as drop", old: []model.ImageRef{a}, new: []model.ImageRef{c}, expected: []model.ImageRef{a}},
		{name: "empty public ids ignored", old: []model.ImageRef{{URL: "x"}}, new: nil, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, droppedImages(tt.old, tt.new))
		})
	}
}

func TestDiscardImages_SkipsEmptyAndSurvivesFailures(t *testing.T) {
	store := new(MockStorage)
	store.On("Delete", mock.Anything, "a").Return(assert.AnError).Once()
	store.On("Delete", mock.Anything, "b").Return(nil).Once()

	discardImages(store,
		model.ImageRef{PublicID: "a"},
		model.ImageRef{},
		model.ImageRef{PublicID: "b"},
	)

	store.AssertExpectations(t)
}
