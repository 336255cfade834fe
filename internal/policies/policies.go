// Package policies holds the per-resource authorization predicates. Every
// handler consults these instead of re-deriving ownership checks inline, so
// the rules live in exactly one place.
package policies

import "github.com/impostor-dev/impostor/internal/models"

type CategoryPolicy struct{}

// View allows the owner, any admin, and everyone for global or default
// categories.
func (CategoryPolicy) View(user *models.User, category *models.Category) bool {
	if category.UserID == nil || category.IsDefault {
		return true
	}
	return *category.UserID == user.ID || user.IsAdmin()
}

func (CategoryPolicy) Update(user *models.User, category *models.Category) bool {
	if user.IsAdmin() {
		return true
	}
	return category.UserID != nil && *category.UserID == user.ID
}

// Delete mirrors Update; default categories are rejected separately as an
// integrity rule, not an ownership one.
func (CategoryPolicy) Delete(user *models.User, category *models.Category) bool {
	if user.IsAdmin() {
		return true
	}
	return category.UserID != nil && *category.UserID == user.ID
}

type GamePolicy struct{}

// Games are strictly private to their owner. There is no admin override.
func (GamePolicy) View(user *models.User, game *models.Game) bool {
	return game.UserID == user.ID
}

func (GamePolicy) Update(user *models.User, game *models.Game) bool {
	return game.UserID == user.ID
}

func (GamePolicy) Delete(user *models.User, game *models.Game) bool {
	return game.UserID == user.ID
}

type WordPolicy struct{}

// Word rights derive from the parent category; the word carries no ownership
// of its own. The category must be preloaded on the word.
func (WordPolicy) View(user *models.User, word *models.Word) bool {
	return CategoryPolicy{}.View(user, &word.Category)
}

func (WordPolicy) Update(user *models.User, word *models.Word) bool {
	return CategoryPolicy{}.Update(user, &word.Category)
}

func (WordPolicy) Delete(user *models.User, word *models.Word) bool {
	return CategoryPolicy{}.Update(user, &word.Category)
}
