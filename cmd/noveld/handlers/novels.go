package handlers

import (
	"net/http"

	apierr "github.com/bearnovel/bearnovel/pkg/api/errors"
	"github.com/bearnovel/bearnovel/pkg/api/types"
	"github.com/bearnovel/bearnovel/pkg/auth"
	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/bearnovel/bearnovel/pkg/novels"
	"github.com/labstack/echo/v4"
)

// ListNovelsHandler responses all novels.
//
// With auth.OptionalAuth, novels liked by the viewer are marked.
func ListNovelsHandler(svc novels.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := svc.List(c.Request().Context(), auth.ViewerId(c))
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.ComposeItems(items))
	}
}

func NovelTypesHandler() echo.HandlerFunc {
	nts := types.ComposeNovelTypes(domain.AllNovelTypes())
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, nts)
	}
}

func PopularNovelsHandler(svc novels.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		ns, err := svc.Popular(c.Request().Context())
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.ComposeNovels(ns))
	}
}

func DailyRankingsHandler(svc novels.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := svc.DailyRankings(c.Request().Context())
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.ComposeRankings(entries))
	}
}

func MyNovelsHandler(svc novels.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := viewer(c)
		if err != nil {
			return err
		}
		items, err := svc.Mine(c.Request().Context(), userId)
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.ComposeItems(items))
	}
}

func NovelsByAuthorHandler(svc novels.Service, userIdParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		authorId, err := intParam(c, userIdParam)
		if err != nil {
			return err
		}
		items, err := svc.ListByAuthor(c.Request().Context(), authorId, auth.ViewerId(c))
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.ComposeItems(items))
	}
}

func NovelsByNickNameHandler(svc novels.Service, nickNameParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := svc.ListByNickName(
			c.Request().Context(), c.Param(nickNameParam), auth.ViewerId(c),
		)
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.ComposeItems(items))
	}
}

func SearchNovelsHandler(svc novels.Service, keywordsParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := svc.SearchTitle(
			c.Request().Context(), c.Param(keywordsParam), auth.ViewerId(c),
		)
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.ComposeItems(items))
	}
}

func GetNovelHandler(svc novels.Service, idParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		novelId, err := intParam(c, idParam)
		if err != nil {
			return err
		}
		item, err := svc.Get(c.Request().Context(), novelId, auth.ViewerId(c))
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.ComposeItem(item))
	}
}

func CreateNovelHandler(svc novels.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := viewer(c)
		if err != nil {
			return err
		}
		req, err := bindJSON[types.NovelRequest](c)
		if err != nil {
			return err
		}
		n, err := svc.Create(c.Request().Context(), userId, req.Param())
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusCreated, types.ComposeNovel(n))
	}
}

// UpdateNovelHandler updates the novel.
//
// When the request body has novelId, it should be same as the one in path.
func UpdateNovelHandler(svc novels.Service, idParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := viewer(c)
		if err != nil {
			return err
		}
		novelId, err := intParam(c, idParam)
		if err != nil {
			return err
		}
		req, err := bindJSON[types.NovelRequest](c)
		if err != nil {
			return err
		}
		if req.NovelId != nil && *req.NovelId != novelId {
			return apierr.BadRequest("novel id mismatch", nil)
		}
		if _, err := svc.Update(c.Request().Context(), userId, novelId, req.Param()); err != nil {
			return apierr.FromError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func DeleteNovelHandler(svc novels.Service, idParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := viewer(c)
		if err != nil {
			return err
		}
		novelId, err := intParam(c, idParam)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.Request().Context(), userId, novelId); err != nil {
			return apierr.FromError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func ToggleLikeHandler(svc novels.Service, idParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := viewer(c)
		if err != nil {
			return err
		}
		novelId, err := intParam(c, idParam)
		if err != nil {
			return err
		}
		liked, count, err := svc.ToggleLike(c.Request().Context(), userId, novelId)
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.Like{LikeCount: count, IsLiked: liked})
	}
}

func RecordViewHandler(svc novels.Service, idParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := viewer(c)
		if err != nil {
			return err
		}
		novelId, err := intParam(c, idParam)
		if err != nil {
			return err
		}
		if _, err := svc.RecordView(c.Request().Context(), userId, novelId); err != nil {
			return apierr.FromError(err)
		}
		return c.NoContent(http.StatusOK)
	}
}

func CheckAuthorHandler(svc novels.Service, idParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := viewer(c)
		if err != nil {
			return err
		}
		novelId, err := intParam(c, idParam)
		if err != nil {
			return err
		}
		isAuthor, err := svc.IsAuthor(c.Request().Context(), userId, novelId)
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.IsAuthor{IsAuthor: isAuthor})
	}
}
