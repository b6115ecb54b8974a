package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"souschef/internal/domain"
	"souschef/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	failureMessage          = "Sorry, something went wrong! Say anything to me to start over..."
	invalidSelectionMessage = "Invalid selection! Say anything to start over..."

	// maxChoices caps how many listed recipes a selection may address
	maxChoices = 5
)

// DialogueEngine runs one turn of the external NLU conversation
type DialogueEngine interface {
	Message(ctx context.Context, text string, dctx domain.DialogueContext) (*domain.DialogueResponse, error)
}

// RecipeLookup searches the external recipe API
type RecipeLookup interface {
	FindByIngredients(ctx context.Context, ingredients string) ([]domain.RecipeCandidate, error)
	FindByCuisine(ctx context.Context, cuisine string) ([]domain.RecipeCandidate, error)
	GetInfo(ctx context.Context, recipeID string) (*domain.RecipeInfo, error)
	GetSteps(ctx context.Context, recipeID string) ([]domain.Instruction, error)
}

// Router drives the per-user conversation. It asks the dialogue engine
// what the user wants, then resolves it against the store and the recipe API.
type Router struct {
	engine      DialogueEngine
	lookup      RecipeLookup
	store       repository.RecipeStore
	sessions    *SessionRegistry
	logger      *zap.Logger
	turnTimeout time.Duration
}

// NewRouter creates a conversation router
func NewRouter(
	engine DialogueEngine,
	lookup RecipeLookup,
	store repository.RecipeStore,
	logger *zap.Logger,
	turnTimeout time.Duration,
) *Router {
	return &Router{
		engine:      engine,
		lookup:      lookup,
		store:       store,
		sessions:    NewSessionRegistry(),
		logger:      logger,
		turnTimeout: turnTimeout,
	}
}

// Handle processes one inbound message and returns the reply text.
// Turns of the same user are serialized; different users run in parallel.
func (r *Router) Handle(ctx context.Context, msg domain.InboundMessage) string {
	log := r.logger.With(
		zap.String("turn_id", uuid.NewString()),
		zap.String("user_id", msg.SenderID),
	)

	s := r.sessions.GetOrCreate(msg.SenderID)
	s.Lock()
	defer s.Unlock()

	if r.turnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.turnTimeout)
		defer cancel()
	}

	reply, err := r.turn(ctx, s, msg, log)
	if err != nil {
		s.Clear()
		if errors.Is(err, domain.ErrInvalidSelection) {
			log.Info("Invalid selection", zap.Error(err))
			return invalidSelectionMessage
		}
		log.Error("Turn failed",
			zap.String("error_kind", domain.ErrorKind(err)),
			zap.Error(err),
		)
		return failureMessage
	}
	return reply
}

func (r *Router) turn(ctx context.Context, s *domain.Session, msg domain.InboundMessage, log *zap.Logger) (string, error) {
	resp, err := r.engine.Message(ctx, msg.Text, s.Context)
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Context == nil {
		return "", fmt.Errorf("%w: response without context", domain.ErrDialogueEngine)
	}
	s.Context = resp.Context
	if !s.Started {
		log.Info("Conversation started")
		s.Started = true
	}

	state := domain.DeriveState(resp)
	log.Debug("Dialogue state derived", zap.String("state", string(state)))

	switch state {
	case domain.StateAwaitingFavoritesDisplay:
		return r.handleFavorites(ctx, s)
	case domain.StateAwaitingIngredientText:
		return r.handleIngredients(ctx, s, msg.Text, log)
	case domain.StateAwaitingSelectionDigit:
		return r.handleSelection(ctx, s, log)
	case domain.StateAwaitingCuisineEntity:
		return r.handleCuisine(ctx, s, resp.Entities[0].Value, log)
	default:
		return r.handleStart(ctx, s, resp)
	}
}

func (r *Router) handleStart(ctx context.Context, s *domain.Session, resp *domain.DialogueResponse) (string, error) {
	if _, err := r.ensureUser(ctx, s); err != nil {
		return "", err
	}
	return startResponse(resp.Output), nil
}

func (r *Router) handleFavorites(ctx context.Context, s *domain.Session) (string, error) {
	user, err := r.ensureUser(ctx, s)
	if err != nil {
		return "", err
	}

	favorites, err := r.store.TopFavorites(ctx, user, maxChoices)
	if err != nil {
		return "", err
	}

	candidates := make([]domain.RecipeCandidate, 0, len(favorites))
	for _, f := range favorites {
		candidates = append(candidates, domain.RecipeCandidate{ID: f.ID, Title: f.Title})
	}

	s.Present(nil, candidates)
	return RecipeListResponse(candidates), nil
}

func (r *Router) handleIngredients(ctx context.Context, s *domain.Session, text string, log *zap.Logger) (string, error) {
	key := domain.CanonicalIngredients(text)
	return r.presentSubject(ctx, s, domain.KindIngredient, key, log, func() (*domain.Entity, error) {
		recipes, err := r.lookup.FindByIngredients(ctx, key)
		if err != nil {
			return nil, err
		}
		return domain.NewIngredient(key, recipes), nil
	})
}

func (r *Router) handleCuisine(ctx context.Context, s *domain.Session, value string, log *zap.Logger) (string, error) {
	key := domain.CanonicalCuisine(value)
	return r.presentSubject(ctx, s, domain.KindCuisine, key, log, func() (*domain.Entity, error) {
		recipes, err := r.lookup.FindByCuisine(ctx, key)
		if err != nil {
			return nil, err
		}
		return domain.NewCuisine(key, recipes), nil
	})
}

// presentSubject resolves an ingredient or cuisine from the cache, fetching it on a miss,
// records the request and lists its recipes
func (r *Router) presentSubject(
	ctx context.Context,
	s *domain.Session,
	kind domain.EntityKind,
	key string,
	log *zap.Logger,
	fetch func() (*domain.Entity, error),
) (string, error) {
	user, err := r.ensureUser(ctx, s)
	if err != nil {
		return "", err
	}

	subject, err := r.store.FindEntity(ctx, kind, key)
	if err != nil {
		return "", err
	}
	if subject == nil {
		log.Debug("Cache miss", zap.String("kind", string(kind)), zap.String("key", key))
		candidate, err := fetch()
		if err != nil {
			return "", err
		}
		if subject, err = r.store.UpsertEntity(ctx, candidate); err != nil {
			return "", err
		}
	}

	if err := r.store.RecordUsage(ctx, subject, user, nil); err != nil {
		return "", err
	}

	s.Present(subject, subject.Payload.Recipes)
	return RecipeListResponse(subject.Payload.Recipes), nil
}

func (r *Router) handleSelection(ctx context.Context, s *domain.Session, log *zap.Logger) (string, error) {
	choice, err := parseSelection(s.Context, len(s.Candidates))
	if err != nil {
		return "", err
	}
	candidate := s.Candidates[choice-1]

	user, err := r.ensureUser(ctx, s)
	if err != nil {
		return "", err
	}

	key := domain.CanonicalRecipeKey(candidate.ID)
	recipe, err := r.store.FindEntity(ctx, domain.KindRecipe, key)
	if err != nil {
		return "", err
	}
	if recipe == nil {
		log.Debug("Cache miss", zap.String("kind", string(domain.KindRecipe)), zap.String("key", key))
		info, err := r.lookup.GetInfo(ctx, candidate.ID)
		if err != nil {
			return "", err
		}
		steps, err := r.lookup.GetSteps(ctx, candidate.ID)
		if err != nil {
			return "", err
		}
		detail := RecipeDetailResponse(info, steps)
		if recipe, err = r.store.UpsertEntity(ctx, domain.NewRecipe(candidate.ID, info.Title, detail)); err != nil {
			return "", err
		}
	}

	if err := r.store.RecordUsage(ctx, recipe, user, s.PendingSubject); err != nil {
		return "", err
	}

	s.Clear()
	return recipe.Payload.Instructions, nil
}

// ensureUser finds or creates the persisted user record for the session
func (r *Router) ensureUser(ctx context.Context, s *domain.Session) (*domain.Entity, error) {
	if s.User != nil {
		return s.User, nil
	}
	user, err := r.store.UpsertEntity(ctx, domain.NewUser(s.UserID))
	if err != nil {
		return nil, err
	}
	s.User = user
	return user, nil
}

// parseSelection validates the digit string the engine captured against the listed candidates
func parseSelection(dctx domain.DialogueContext, listed int) (int, error) {
	raw, ok := dctx.String(domain.ContextChoice)
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: no selection in context", domain.ErrInvalidSelection)
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidSelection, raw)
		}
	}

	choice, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidSelection, err)
	}
	if limit := min(listed, maxChoices); choice < 1 || choice > limit {
		return 0, fmt.Errorf("%w: %d out of range 1..%d", domain.ErrInvalidSelection, choice, limit)
	}
	return choice, nil
}
