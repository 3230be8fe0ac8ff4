package repository

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/shared/utils"
)

const (
	booksTable = "books"
	loansTable = "book_loans"

	// SuggestionLimit caps name and author suggestion lists.
	SuggestionLimit = 20
)

var (
	dialect = goqu.Dialect("postgres")

	colID     = goqu.I("b.id")
	colName   = goqu.I("b.name")
	colAuthor = goqu.I("b.author")
	colISBN   = goqu.I("b.isbn")
	colPieces = goqu.I("b.number_of_pieces")

	bookColumns = []interface{}{
		colID, colName, colAuthor, goqu.I("b.issue_year"), colISBN, colPieces, goqu.I("b.created_at"),
	}
)

type filterQueries struct {
	countSQL  string
	countArgs []interface{}
	listSQL   string
	listArgs  []interface{}
}

func fromBooks() *goqu.SelectDataset {
	return dialect.From(goqu.T(booksTable).As("b"))
}

// activeLoanCount is a correlated subquery counting active loans of b.
func activeLoanCount() *goqu.SelectDataset {
	return dialect.From(goqu.T(loansTable).As("l")).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.I("l.book_id").Eq(colID),
			goqu.I("l.returned_date").IsNull(),
		)
}

func filterConditions(f model.BookFilter) []exp.Expression {
	var where []exp.Expression

	if f.UsesTerms() {
		for _, term := range f.Terms {
			p := utils.ContainsPattern(term)
			where = append(where, goqu.Or(colName.ILike(p), colAuthor.ILike(p), colISBN.ILike(p)))
		}
	} else {
		if f.Name != "" {
			where = append(where, colName.ILike(utils.ContainsPattern(f.Name)))
		}
		if f.Author != "" {
			where = append(where, colAuthor.ILike(utils.ContainsPattern(f.Author)))
		}
		if f.ISBN != "" {
			where = append(where, colISBN.ILike(utils.ContainsPattern(f.ISBN)))
		}
	}

	if f.OnlyAvailable {
		where = append(where, colPieces.Gt(activeLoanCount()))
	}

	return where
}

func orderExpressions(f model.BookFilter) []exp.OrderedExpression {
	primary, secondary := colName, colAuthor
	if f.SortBy == model.SortByAuthor {
		primary, secondary = colAuthor, colName
	}

	first := primary.Asc()
	if f.Descending {
		first = primary.Desc()
	}
	return []exp.OrderedExpression{first, secondary.Asc(), colID.Asc()}
}

// buildFilterQueries renders the count and page queries for f. f must
// already carry clamped paging.
func buildFilterQueries(f model.BookFilter) (*filterQueries, error) {
	where := filterConditions(f)

	countSQL, countArgs, err := fromBooks().
		Select(goqu.COUNT(goqu.Star())).
		Where(where...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}

	listSQL, listArgs, err := fromBooks().
		Select(bookColumns...).
		Where(where...).
		Order(orderExpressions(f)...).
		Limit(uint(f.PageSize)).
		Offset(uint(utils.Offset(f.Page, f.PageSize))).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}

	return &filterQueries{
		countSQL:  countSQL,
		countArgs: countArgs,
		listSQL:   listSQL,
		listArgs:  listArgs,
	}, nil
}

// buildSuggestionQuery selects distinct values of column starting with prefix.
func buildSuggestionQuery(column, prefix string) (string, []interface{}, error) {
	col := goqu.I("b." + column)
	return fromBooks().
		Select(col).
		Distinct().
		Where(col.ILike(utils.PrefixPattern(prefix))).
		Order(col.Asc()).
		Limit(SuggestionLimit).
		Prepared(true).
		ToSQL()
}
