package app

import (
	"fmt"

	projectHTTP "github.com/codecollab/server/internal/project/http"
	projectRepository "github.com/codecollab/server/internal/project/repository"
	projectUseCase "github.com/codecollab/server/internal/project/usecase"
)

// ProjectRepository returns the project repository for the configured driver.
func (c *Container) ProjectRepository() (projectUseCase.ProjectRepository, error) {
	var err error
	c.projectRepoInit.Do(func() {
		c.projectRepo, err = c.initProjectRepository()
		if err != nil {
			c.initErrors["projectRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["projectRepo"]; exists {
		return nil, storedErr
	}
	return c.projectRepo, nil
}

// ProjectUseCase returns the project use case.
func (c *Container) ProjectUseCase() (projectUseCase.UseCase, error) {
	var err error
	c.projectUseCaseInit.Do(func() {
		c.projectUseCase, err = c.initProjectUseCase()
		if err != nil {
			c.initErrors["projectUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["projectUseCase"]; exists {
		return nil, storedErr
	}
	return c.projectUseCase, nil
}

// ProjectHandler returns the HTTP handler for /projects routes.
func (c *Container) ProjectHandler() (*projectHTTP.ProjectHandler, error) {
	var err error
	c.projectHandlerInit.Do(func() {
		c.projectHandler, err = c.initProjectHandler()
		if err != nil {
			c.initErrors["projectHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["projectHandler"]; exists {
		return nil, storedErr
	}
	return c.projectHandler, nil
}

func (c *Container) initProjectRepository() (projectUseCase.ProjectRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for project repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return projectRepository.NewMySQLProjectRepository(db), nil
	case "postgres":
		return projectRepository.NewPostgreSQLProjectRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initProjectUseCase() (projectUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for project use case: %w", err)
	}

	projectRepo, err := c.ProjectRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get project repository for project use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for project use case: %w", err)
	}

	baseUseCase := projectUseCase.NewProjectUseCase(txManager, projectRepo, userRepo)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for project use case: %w", err)
		}
		return projectUseCase.NewProjectUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initProjectHandler() (*projectHTTP.ProjectHandler, error) {
	useCase, err := c.ProjectUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get project use case for project handler: %w", err)
	}
	return projectHTTP.NewProjectHandler(useCase, c.Logger()), nil
}
