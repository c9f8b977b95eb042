package models

import (
	"time"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/fields"
)

// Movie is the flat record the catalog works with. List endpoints populate
// only ID, Title, Year and Poster; the extended fields are filled in by a
// detail fetch. ID is TMDB's numeric id carried as a string and is the join
// key between the two shapes.
type Movie struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Year        string              `json:"year"`   // 4-digit year or "No disponible"
	Poster      string              `json:"poster"` // absolute URL, placeholder when missing
	Genre       string              `json:"genre,omitempty"`
	Director    string              `json:"director,omitempty"`
	Cast        []CastMember        `json:"cast,omitempty"` // at most 5, provider order
	Runtime     fields.MovieRuntime `json:"runtime,omitempty"`
	Plot        string              `json:"plot,omitempty"`
	TrailerKey  *string             `json:"trailerKey,omitempty"`
	VoteAverage *float64            `json:"vote_average,omitempty"`
}

type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	ImageURL  string `json:"imageUrl"`
}

// Favorite is a Movie reduced to its list shape. Kept in memory only.
type Favorite struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	Poster string `json:"poster"`
}

// Comment is immutable once created; CreatedAt is assigned server-side.
type Comment struct {
	MovieID   string    `json:"movieId" bson:"movieId"`
	UserEmail string    `json:"userEmail" bson:"userEmail"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash []byte    `json:"-" bson:"passwordHash"`
	FirstName    string    `json:"firstName" bson:"firstName"`
	LastName     string    `json:"lastName" bson:"lastName"`
	BirthDate    string    `json:"birthDate,omitempty" bson:"birthDate,omitempty"`
	Provider     string    `json:"provider" bson:"provider"` // "password" or "google"
	CreatedAt    time.Time `json:"-" bson:"createdAt"`
	UpdatedAt    time.Time `json:"-" bson:"updatedAt"`
}

var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}
