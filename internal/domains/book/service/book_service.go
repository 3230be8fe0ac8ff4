package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/logger"
)

type BookService struct {
	repo  repository.RepositoryInterface
	log   zerolog.Logger
	newID func() string
}

type Option func(*BookService)

// WithLogger replaces the global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *BookService) { s.log = l }
}

// WithIDGenerator replaces uuid.NewString for new book ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *BookService) { s.newID = fn }
}

func NewBookService(repo repository.RepositoryInterface, opts ...Option) ServiceInterface {
	s := &BookService{
		repo:  repo,
		log:   logger.Named("book_service"),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error) {
	exists, err := s.repo.ExistsByNameAuthorISBN(ctx, req.Name, req.Author, req.ISBN)
	if err != nil {
		s.log.Error().Err(err).Str("isbn", req.ISBN).Msg("uniqueness check failed")
		return nil, err
	}
	if exists {
		return nil, model.NewDuplicateBookError(req.Name, req.Author, req.ISBN)
	}

	book := &model.Book{
		ID:             s.newID(),
		Name:           req.Name,
		Author:         req.Author,
		IssueYear:      req.IssueYear,
		ISBN:           req.ISBN,
		NumberOfPieces: req.NumberOfPieces,
	}
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	s.log.Info().Str("book_id", book.ID).Str("isbn", book.ISBN).Msg("book created")

	resp := book.ToResponse()
	return &resp, nil
}

// BuildFilter normalizes a raw listing request: paging is clamped, the
// search string is split on commas, and blank field filters are dropped.
func BuildFilter(req model.ListBooksRequest) model.BookFilter {
	page, size := utils.ClampPaging(req.PageNumber, req.PageSize)

	return model.BookFilter{
		Page:          page,
		PageSize:      size,
		Terms:         utils.SplitTerms(req.Search),
		Name:          strings.TrimSpace(req.Name),
		Author:        strings.TrimSpace(req.Author),
		ISBN:          strings.TrimSpace(req.ISBN),
		SortBy:        model.ParseSortField(req.SortBy),
		Descending:    model.IsDescending(req.SortDirection),
		OnlyAvailable: req.OnlyAvailable,
	}
}

func (s *BookService) ListBooks(ctx context.Context, req model.ListBooksRequest) (*utils.PagedResult[model.BookResponse], error) {
	filter := BuildFilter(req)

	books, total, err := s.repo.GetFiltered(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("list books failed")
		return nil, err
	}

	items := make([]model.BookResponse, 0, len(books))
	for i := range books {
		items = append(items, books[i].ToResponse())
	}

	return &utils.PagedResult[model.BookResponse]{
		Items:      items,
		TotalCount: total,
		PageNumber: filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

func (s *BookService) NameSuggestions(ctx context.Context, prefix string) ([]string, error) {
	if strings.TrimSpace(prefix) == "" {
		return []string{}, nil
	}
	return s.repo.NameSuggestions(ctx, prefix)
}

func (s *BookService) AuthorSuggestions(ctx context.Context, prefix string) ([]string, error) {
	if strings.TrimSpace(prefix) == "" {
		return []string{}, nil
	}
	return s.repo.AuthorSuggestions(ctx, prefix)
}
