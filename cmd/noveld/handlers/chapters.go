package handlers

import (
	"net/http"

	apierr "github.com/bearnovel/bearnovel/pkg/api/errors"
	"github.com/bearnovel/bearnovel/pkg/api/types"
	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/bearnovel/bearnovel/pkg/novels"
	"github.com/labstack/echo/v4"
)

func ListChaptersHandler(svc novels.Service, novelIdParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		novelId, err := intParam(c, novelIdParam)
		if err != nil {
			return err
		}
		chapters, err := svc.Chapters(c.Request().Context(), novelId)
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.ComposeChapters(chapters))
	}
}

func GetChapterHandler(svc novels.Service, chapterIdParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		chapterId, err := intParam(c, chapterIdParam)
		if err != nil {
			return err
		}
		ch, err := svc.Chapter(c.Request().Context(), chapterId)
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.ComposeChapter(ch))
	}
}

func CreateChapterHandler(svc novels.Service, novelIdParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := viewer(c)
		if err != nil {
			return err
		}
		novelId, err := intParam(c, novelIdParam)
		if err != nil {
			return err
		}
		req, err := bindJSON[types.ChapterRequest](c)
		if err != nil {
			return err
		}
		ch, err := svc.AddChapter(c.Request().Context(), userId, novelId, req.Param())
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusCreated, types.ComposeChapter(ch))
	}
}

func UpdateChapterHandler(svc novels.Service, chapterIdParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := viewer(c)
		if err != nil {
			return err
		}
		chapterId, err := intParam(c, chapterIdParam)
		if err != nil {
			return err
		}
		req, err := bindJSON[types.ChapterRequest](c)
		if err != nil {
			return err
		}
		if _, err := svc.EditChapter(c.Request().Context(), userId, chapterId, req.Param()); err != nil {
			return apierr.FromError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func DeleteChapterHandler(svc novels.Service, chapterIdParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := viewer(c)
		if err != nil {
			return err
		}
		chapterId, err := intParam(c, chapterIdParam)
		if err != nil {
			return err
		}
		if err := svc.RemoveChapter(c.Request().Context(), userId, chapterId); err != nil {
			return apierr.FromError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func ListCommentsHandler(svc novels.Service, novelIdParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		novelId, err := intParam(c, novelIdParam)
		if err != nil {
			return err
		}
		comments, err := svc.Comments(c.Request().Context(), novelId)
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusOK, types.ComposeComments(comments))
	}
}

func CreateCommentHandler(svc novels.Service, novelIdParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := viewer(c)
		if err != nil {
			return err
		}
		novelId, err := intParam(c, novelIdParam)
		if err != nil {
			return err
		}
		req, err := bindJSON[types.CommentRequest](c)
		if err != nil {
			return err
		}
		comment, err := svc.AddComment(
			c.Request().Context(), userId, novelId, domain.CommentParam{Content: req.Content},
		)
		if err != nil {
			return apierr.FromError(err)
		}
		return c.JSON(http.StatusCreated, types.ComposeComment(comment))
	}
}

func DeleteCommentHandler(svc novels.Service, commentIdParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := viewer(c)
		if err != nil {
			return err
		}
		commentId, err := intParam(c, commentIdParam)
		if err != nil {
			return err
		}
		if err := svc.RemoveComment(c.Request().Context(), userId, commentId); err != nil {
			return apierr.FromError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
