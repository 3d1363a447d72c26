package gen

import (
	"fmt"
	"math/rand"
)

// Faker synthesizes plausible Brazilian customer attributes for when the
// trained pools are empty.
type Faker struct {
	rng *rand.Rand
}

func NewFaker(rng *rand.Rand) *Faker {
	return &Faker{rng: rng}
}

var fakeCities = []string{
	"Sao Paulo", "Rio De Janeiro", "Belo Horizonte", "Curitiba",
	"Porto Alegre", "Salvador", "Fortaleza", "Recife", "Campinas",
	"Brasilia", "Goiania", "Guarulhos", "Niteroi", "Santos",
}

var fakeStates = []string{
	"SP", "RJ", "MG", "RS", "PR", "SC", "BA", "DF", "ES", "GO",
	"PE", "CE", "PA", "MT",
}

var titleWords = []string{
	"produto", "entrega", "compra", "qualidade", "otimo", "bom",
	"excelente", "rapida", "recomendo", "perfeito", "atendimento",
}

// ZipPrefix returns a 5-digit zip code prefix.
func (f *Faker) ZipPrefix() string {
	return fmt.Sprintf("%05d", f.rng.Intn(100000))
}

func (f *Faker) City() string {
	return fakeCities[f.rng.Intn(len(fakeCities))]
}

func (f *Faker) StateAbbr() string {
	return fakeStates[f.rng.Intn(len(fakeStates))]
}

// ShortSentence returns a three-word review title.
func (f *Faker) ShortSentence() string {
	a := titleWords[f.rng.Intn(len(titleWords))]
	b := titleWords[f.rng.Intn(len(titleWords))]
	c := titleWords[f.rng.Intn(len(titleWords))]
	return fmt.Sprintf("%s %s %s.", a, b, c)
}
