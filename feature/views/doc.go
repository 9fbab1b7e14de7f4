// Package views renders the site's two pages.
//
// GET / renders the "home" view and GET /rotor renders the "rotor" view, both without
// any template data. Templates are plain HTML files in the views directory, rendered by
// the gofiber html engine, which must be set as fiber.Config.Views.
//
// A template that fails to render returns the error to Fiber, which answers 500.
package views
