package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/mock"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

func catalogRestaurant() *ports.Restaurant {
	return &ports.Restaurant{
		ID:          "rest-1",
		Name:        "Thai Garden",
		DeliveryFee: 2.99,
		Dishes: []ports.Dish{
			{
				ID:    "dish-1",
				Name:  "Pad Thai",
				Price: 9.50,
				Portions: []ports.Portion{
					{ID: "portion-l", Name: "Large", Price: 12.00},
				},
			},
		},
	}
}

func TestAddCartItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAddCartItemCommand("cust-1", "rest-1", "dish-1", "portion-l", 2)
	require.NoError(t, err)

	emptyCart, err := cart.NewCart("cust-1")
	require.NoError(t, err)

	catalog := new(MockCatalogClient)
	catalog.On("GetRestaurant", ctx, "rest-1").Return(catalogRestaurant(), nil).Once()

	cartRepo := new(MockCartRepository)
	uow := new(MockCartUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("Get", ctx, "cust-1").Return(emptyCart, nil).Once(),
		cartRepo.On("Save", ctx, mock.AnythingOfType("*cart.Cart")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAddCartItemCommandHandler(factory, catalog)
	require.NoError(t, handler.Handle(ctx, cmd))

	// Portion price wins over the base dish price.
	require.Len(t, emptyCart.Lines(), 1)
	line := emptyCart.Lines()[0]
	assert.Equal(t, "Pad Thai", line.DishName())
	assert.Equal(t, "Large", line.PortionName())
	assert.InDelta(t, 12.00, line.UnitPrice(), 1e-9)
	assert.Equal(t, 2, line.Quantity())

	catalog.AssertExpectations(t)
	cartRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAddCartItemCommandHandler_Handle_DishNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAddCartItemCommand("cust-1", "rest-1", "dish-unknown", "", 1)
	require.NoError(t, err)

	catalog := new(MockCatalogClient)
	catalog.On("GetRestaurant", ctx, "rest-1").Return(catalogRestaurant(), nil).Once()

	factory := new(MockCartUoWFactory)

	handler := commands.NewAddCartItemCommandHandler(factory, catalog)
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestAddCartItemCommandHandler_Handle_CrossRestaurantConflict(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAddCartItemCommand("cust-1", "rest-1", "dish-1", "", 1)
	require.NoError(t, err)

	otherCart, err := cart.NewCart("cust-1")
	require.NoError(t, err)
	_, err = otherCart.AddItem("rest-2", "dish-9", "Sushi Set", "", "", 1, 15.00)
	require.NoError(t, err)

	catalog := new(MockCatalogClient)
	catalog.On("GetRestaurant", ctx, "rest-1").Return(catalogRestaurant(), nil).Once()

	cartRepo := new(MockCartRepository)
	uow := new(MockCartUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("Get", ctx, "cust-1").Return(otherCart, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAddCartItemCommandHandler(factory, catalog)
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrConflict)
	cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAddCartItemCommandHandler_Handle_CatalogFailure(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAddCartItemCommand("cust-1", "rest-1", "dish-1", "", 1)
	require.NoError(t, err)

	catalog := new(MockCatalogClient)
	catalog.On("GetRestaurant", ctx, "rest-1").
		Return(nil, errs.NewCollaboratorFailureError("catalog", "GetRestaurant", assert.AnError)).Once()

	factory := new(MockCartUoWFactory)

	handler := commands.NewAddCartItemCommandHandler(factory, catalog)
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrCollaboratorFailure)
	factory.AssertNotCalled(t, "Create")
}
