// common.go
//
// CrossFit workout and training group tracking service
// Copyright (c) 2026 CrossBox <dev@crossbox.fit> (https://crossbox.fit)
//
// This file is part of wodtracker.
// wodtracker is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// wodtracker is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with wodtracker.
// If not, see <https://www.gnu.org/licenses/>.

package handlers

import (
	"strconv"

	"github.com/crossbox/wodtracker/internal/middleware"
	"github.com/crossbox/wodtracker/internal/models"
	"github.com/gofiber/fiber/v2"
)

// currentUser returns the authenticated user placed in Locals by the auth
// middleware. Handlers behind AuthRequired can rely on it being non-nil.
func currentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(middleware.UserKey).(*models.User)
	return u
}

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint64, error) {
	return strconv.ParseUint(c.Params(name), 10, 64)
}
