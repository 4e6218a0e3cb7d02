package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"shoetracker/internal/analysis"
	"shoetracker/internal/config"
	"shoetracker/internal/logging"
	"shoetracker/internal/store"
)

var validate = validator.New()

var (
	// ErrInvalidShoe is returned when shoe input fails validation
	ErrInvalidShoe = errors.New("invalid shoe")
	// ErrAmbiguousShoe is returned when a reference matches several shoes
	ErrAmbiguousShoe = errors.New("shoe reference is ambiguous")
)

// ShoeRepository is the persistence the shoe service needs
type ShoeRepository interface {
	CreateShoe(s *store.Shoe) error
	UpdateShoe(s *store.Shoe) error
	GetShoe(id string) (*store.Shoe, error)
	ListShoes(archived bool) ([]store.Shoe, error)
	ListAllShoes() ([]store.Shoe, error)
	DeleteShoe(id string) error
	ToggleArchive(id string, now time.Time) (*time.Time, error)

	ListWorkouts(shoeID string) ([]store.Workout, error)
	WorkoutsByShoe() (map[string][]store.Workout, error)
	AssignWorkout(p store.AssignWorkoutParams, shoeID string) (*store.Workout, error)
	RemoveWorkout(id string) error
	RestoreShoe(s *store.Shoe, workouts []store.AssignWorkoutParams) error
}

// ShoeInput holds the user-editable fields of a shoe
type ShoeInput struct {
	Name           string    `validate:"required,max=100"`
	Color          string    `validate:"omitempty,max=40"`
	Purchased      time.Time `validate:"required"`
	TargetDistance int       `validate:"gt=0,lte=100000"` // kilometers
}

// ValidateShoeInput trims and checks shoe input
func ValidateShoeInput(in *ShoeInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = describeFieldError(fe)
			}
			return fmt.Errorf("%w: %s", ErrInvalidShoe, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidShoe, err)
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	field := map[string]string{
		"Name":           "name",
		"Color":          "color",
		"Purchased":      "purchase date",
		"TargetDistance": "target distance",
	}[fe.Field()]
	if field == "" {
		field = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// ShoeService manages shoes and derives their metrics
type ShoeService struct {
	repo   ShoeRepository
	prefs  config.PreferencesConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewShoeService creates a shoe service
func NewShoeService(repo ShoeRepository, prefs config.PreferencesConfig, logger *zap.Logger) *ShoeService {
	return &ShoeService{
		repo:   repo,
		prefs:  prefs,
		logger: logging.OrNop(logger),
		now:    time.Now,
	}
}

// Preferences returns the preferences the service sorts and buckets by
func (s *ShoeService) Preferences() config.PreferencesConfig {
	return s.prefs
}

// Calendar returns the week scheme for the configured locale
func (s *ShoeService) Calendar() analysis.Calendar {
	tag, err := language.Parse(s.prefs.Locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return analysis.CalendarForLocale(tag)
}

// Create validates input and stores a new shoe
func (s *ShoeService) Create(in ShoeInput) (*store.Shoe, error) {
	if err := ValidateShoeInput(&in); err != nil {
		return nil, err
	}

	shoe := &store.Shoe{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Color:          in.Color,
		Created:        s.now(),
		Purchased:      in.Purchased,
		TargetDistance: in.TargetDistance,
	}
	if err := s.repo.CreateShoe(shoe); err != nil {
		return nil, err
	}

	s.logger.Info("created shoe", zap.String("shoe_id", shoe.ID), zap.String("name", shoe.Name))
	return shoe, nil
}

// Update validates input and replaces the editable fields of a shoe
func (s *ShoeService) Update(id string, in ShoeInput) (*store.Shoe, error) {
	if err := ValidateShoeInput(&in); err != nil {
		return nil, err
	}

	shoe, err := s.repo.GetShoe(id)
	if err != nil {
		return nil, err
	}

	shoe.Name = in.Name
	shoe.Color = in.Color
	shoe.Purchased = in.Purchased
	shoe.TargetDistance = in.TargetDistance

	if err := s.repo.UpdateShoe(shoe); err != nil {
		return nil, err
	}

	s.logger.Info("updated shoe", zap.String("shoe_id", id))
	return shoe, nil
}

// Delete permanently removes a shoe and its workouts
func (s *ShoeService) Delete(id string) error {
	if err := s.repo.DeleteShoe(id); err != nil {
		return err
	}
	s.logger.Info("deleted shoe", zap.String("shoe_id", id))
	return nil
}

// ToggleArchive retires a shoe in rotation or restores a retired one.
// It returns the new archive time, nil when restored.
func (s *ShoeService) ToggleArchive(id string) (*time.Time, error) {
	archived, err := s.repo.ToggleArchive(id, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info("toggled archive", zap.String("shoe_id", id), zap.Bool("archived", archived != nil))
	return archived, nil
}

// RemoveWorkout detaches a workout from its shoe by deleting it
func (s *ShoeService) RemoveWorkout(id string) error {
	if err := s.repo.RemoveWorkout(id); err != nil {
		return err
	}
	s.logger.Info("removed workout", zap.String("workout_id", id))
	return nil
}

// Resolve finds a shoe by ID, unique ID prefix, or case-insensitive name
func (s *ShoeService) Resolve(ref string) (*store.Shoe, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, store.ErrShoeNotFound
	}

	if shoe, err := s.repo.GetShoe(ref); err == nil {
		return shoe, nil
	} else if !errors.Is(err, store.ErrShoeNotFound) {
		return nil, err
	}

	shoes, err := s.repo.ListAllShoes()
	if err != nil {
		return nil, err
	}

	var matches []store.Shoe
	for _, shoe := range shoes {
		if strings.HasPrefix(shoe.ID, ref) || strings.EqualFold(shoe.Name, ref) {
			matches = append(matches, shoe)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%q: %w", ref, store.ErrShoeNotFound)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%q matches %d shoes: %w", ref, len(matches), ErrAmbiguousShoe)
	}
}
