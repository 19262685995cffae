package shoppinglist

import (
	"context"
	"errors"
	"testing"

	"foodgram/domain"
	"foodgram/internal/testdb"
	"foodgram/internal/utils/mailing"
	"foodgram/pkg/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentMail struct {
	to          string
	body        string
	attachments []mailing.Attachment
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendMail(toEmail, subject, body string, attachments ...mailing.Attachment) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: toEmail, body: body, attachments: attachments})
	return nil
}

func newService(db *gorm.DB, mailer mailing.Mailer) ShoppingListService {
	return NewShoppingListService(NewShoppingListRepository(db), user.NewUserRepository(db), mailer, "")
}

func TestDownloadFlourEggMilk(t *testing.T) {
	db := testdb.New(t)
	cook := testdb.CreateUser(t, db, "cook")
	author := testdb.CreateUser(t, db, "author")

	flour := testdb.CreateIngredient(t, db, "flour", "g")
	egg := testdb.CreateIngredient(t, db, "egg", "pc")
	milk := testdb.CreateIngredient(t, db, "milk", "ml")

	pancakes := testdb.CreateRecipe(t, db, author, "pancakes", nil,
		testdb.Line{Ingredient: flour, Amount: 200},
		testdb.Line{Ingredient: egg, Amount: 2},
	)
	crepes := testdb.CreateRecipe(t, db, author, "crepes", nil,
		testdb.Line{Ingredient: flour, Amount: 100},
		testdb.Line{Ingredient: milk, Amount: 50},
	)
	testdb.CreateRecipe(t, db, author, "bread", nil,
		testdb.Line{Ingredient: flour, Amount: 500},
	)
	testdb.AddToCart(t, db, cook, pancakes)
	testdb.AddToCart(t, db, cook, crepes)

	svc := newService(db, &fakeMailer{})

	doc, err := svc.Download(context.Background(), cook.ID.String(), domain.ListFormatText)
	require.NoError(t, err)
	assert.Equal(t, "1. egg: 2 (pc)\n2. flour: 300 (g)\n3. milk: 50 (ml)\n", string(doc.Body))
	assert.Equal(t, "shopping_cart", doc.Filename)

	again, err := svc.Download(context.Background(), cook.ID.String(), "")
	require.NoError(t, err)
	assert.Equal(t, doc.Body, again.Body)
}

func TestDownloadSumsLargestAmounts(t *testing.T) {
	db := testdb.New(t)
	cook := testdb.CreateUser(t, db, "cook")
	author := testdb.CreateUser(t, db, "author")
	rice := testdb.CreateIngredient(t, db, "rice", "g")

	for _, name := range []string{"pilaf", "risotto"} {
		recipe := testdb.CreateRecipe(t, db, author, name, nil,
			testdb.Line{Ingredient: rice, Amount: domain.MaxIngredientAmount},
		)
		testdb.AddToCart(t, db, cook, recipe)
	}

	doc, err := newService(db, &fakeMailer{}).Download(context.Background(), cook.ID.String(), domain.ListFormatText)
	require.NoError(t, err)
	assert.Equal(t, "1. rice: 4294967294 (g)\n", string(doc.Body))
}

func TestAggregateSeparatesUnits(t *testing.T) {
	db := testdb.New(t)
	cook := testdb.CreateUser(t, db, "cook")

	grams := testdb.CreateIngredient(t, db, "sugar", "g")
	spoons := testdb.CreateIngredient(t, db, "sugar", "tbsp")

	cake := testdb.CreateRecipe(t, db, cook, "cake", nil,
		testdb.Line{Ingredient: grams, Amount: 150},
		testdb.Line{Ingredient: spoons, Amount: 2},
	)
	tea := testdb.CreateRecipe(t, db, cook, "tea", nil,
		testdb.Line{Ingredient: spoons, Amount: 1},
	)
	testdb.AddToCart(t, db, cook, cake)
	testdb.AddToCart(t, db, cook, tea)

	items, err := newService(db, &fakeMailer{}).Aggregate(context.Background(), cook.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []domain.ShoppingListItem{
		{Name: "sugar", MeasurementUnit: "g", TotalAmount: 150},
		{Name: "sugar", MeasurementUnit: "tbsp", TotalAmount: 3},
	}, items)
}

func TestAggregateEmptyCart(t *testing.T) {
	db := testdb.New(t)
	cook := testdb.CreateUser(t, db, "cook")

	svc := newService(db, &fakeMailer{})

	items, err := svc.Aggregate(context.Background(), cook.ID.String())
	require.NoError(t, err)
	assert.Empty(t, items)

	doc, err := svc.Download(context.Background(), cook.ID.String(), domain.ListFormatText)
	require.NoError(t, err)
	assert.Empty(t, doc.Body)
}

func TestDownloadUnknownFormat(t *testing.T) {
	db := testdb.New(t)
	cook := testdb.CreateUser(t, db, "cook")

	_, err := newService(db, &fakeMailer{}).Download(context.Background(), cook.ID.String(), "xls")
	assert.ErrorIs(t, err, domain.ErrUnknownListFormat)
}

func TestSendMailsListToUser(t *testing.T) {
	db := testdb.New(t)
	cook := testdb.CreateUser(t, db, "cook")
	egg := testdb.CreateIngredient(t, db, "egg", "pc")
	omelette := testdb.CreateRecipe(t, db, cook, "omelette", nil, testdb.Line{Ingredient: egg, Amount: 3})
	testdb.AddToCart(t, db, cook, omelette)

	mailer := &fakeMailer{}
	require.NoError(t, newService(db, mailer).Send(context.Background(), cook.ID.String(), domain.ListFormatPDF))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "cook@example.com", mailer.sent[0].to)
	assert.Equal(t, "1. egg: 3 (pc)\n", mailer.sent[0].body)
	require.Len(t, mailer.sent[0].attachments, 1)
	assert.Equal(t, "shopping_cart.pdf", mailer.sent[0].attachments[0].Filename)
}

func TestSendMailerFailure(t *testing.T) {
	db := testdb.New(t)
	cook := testdb.CreateUser(t, db, "cook")

	mailer := &fakeMailer{err: errors.New("smtp down")}
	err := newService(db, mailer).Send(context.Background(), cook.ID.String(), domain.ListFormatText)
	assert.Error(t, err)
}
