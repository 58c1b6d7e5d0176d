package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Genre string

const (
	GenreFiction    Genre = "FICTION"
	GenreNonFiction Genre = "NON_FICTION"
	GenreScience    Genre = "SCIENCE"
	GenreHistory    Genre = "HISTORY"
	GenreBiography  Genre = "BIOGRAPHY"
	GenreFantasy    Genre = "FANTASY"

	BookEntity = "book"
)

type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Author      string             `bson:"author" json:"author"`
	Genre       Genre              `bson:"genre" json:"genre"`
	ISBN        string             `bson:"isbn" json:"isbn"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Copies      int                `bson:"copies" json:"copies"`
	Available   bool               `bson:"available" json:"available"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

var ValidGenres = map[string]bool{
	string(GenreFiction):    true,
	string(GenreNonFiction): true,
	string(GenreScience):    true,
	string(GenreHistory):    true,
	string(GenreBiography):  true,
	string(GenreFantasy):    true,
}

func IsValidGenre(genre string) bool {
	return ValidGenres[genre]
}
