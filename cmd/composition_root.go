package cmd

import (
	"time"

	"gharkakhana/internal/adapters/out/postgres"
	"gharkakhana/internal/core/application/usecases/commands"
	"gharkakhana/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateCancelExpiredOrdersCommandHandler() commands.CancelExpiredOrdersCommandHandler {
	grace := time.Duration(c.config.OrderExpiryGraceMinutes) * time.Minute
	return commands.NewCancelExpiredOrdersCommandHandler(c.createUoWFactory(), grace)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetChefOrdersQueryHandler() queries.GetChefOrdersQueryHandler {
	return queries.NewGetChefOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetChefScheduleQueryHandler() queries.GetChefScheduleQueryHandler {
	return queries.NewGetChefScheduleQueryHandler(c.gormDB)
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
