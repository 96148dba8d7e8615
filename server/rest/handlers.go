// Package rest exposes the domain operations over a plain JSON API. It
// shares the store and auth provider with the GraphQL surface, the two
// endpoints are different views of the same operations.
package rest

import (
	"net/http"
	"time"

	"github.com/Luismorlan/chirper/auth"
	"github.com/Luismorlan/chirper/filestore"
	"github.com/Luismorlan/chirper/model"
	"github.com/Luismorlan/chirper/notification"
	"github.com/Luismorlan/chirper/store"
	"github.com/gin-gonic/gin"
)

// Handler bundles everything the REST endpoints need.
type Handler struct {
	Store    *store.Store
	Auth     *auth.Provider
	Files    filestore.FileStore
	Notifier notification.Sender
}

// RegisterPublic mounts the routes that must work without a token:
// account creation and token issuance.
func (h *Handler) RegisterPublic(g *gin.RouterGroup) {
	g.POST("/signup", h.SignUp)
	g.POST("/login", h.LogIn)
	g.POST("/token/refresh", h.RefreshToken)
}

// Register mounts every authenticated REST route on the given group.
func (h *Handler) Register(g *gin.RouterGroup) {
	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUser)
	g.POST("/users/:id/password", h.ChangePassword)
	g.POST("/users/:id/deactivate", h.DeactivateUser)
	g.POST("/users/:id/activate", h.ActivateUser)
	g.POST("/users/:id/follow", h.Follow)
	g.POST("/users/:id/unfollow", h.Unfollow)
	g.GET("/users/:id/followers", h.Followers)
	g.GET("/users/:id/following", h.Following)
	g.GET("/users/:id/tweets", h.TweetsByUser)
	g.GET("/users/:id/home", h.Home)
	g.GET("/users/:id/newsfeed", h.NewsFeed)

	g.GET("/tweets", h.ListTweets)
	g.POST("/tweets", h.CreateTweet)
	g.GET("/tweets/:id", h.GetTweet)
	g.DELETE("/tweets/:id", h.DeleteTweet)
	g.POST("/tweets/:id/retweet", h.Retweet)
	g.GET("/tweets/:id/replies", h.RepliesForTweet)
	g.POST("/tweets/:id/like", h.LikeTweet)
	g.POST("/tweets/:id/unlike", h.UnlikeTweet)
	g.GET("/tweets/:id/likes", h.TweetLikeCount)

	g.POST("/replies", h.CreateReply)
	g.GET("/replies/:id", h.GetReply)
	g.DELETE("/replies/:id", h.DeleteReply)
	g.GET("/replies/:id/children", h.Children)
	g.GET("/replies/:id/descendants", h.Descendants)
	g.POST("/replies/:id/retweet", h.RetweetReply)
	g.POST("/replies/:id/like", h.LikeReply)
	g.POST("/replies/:id/unlike", h.UnlikeReply)
	g.GET("/replies/:id/likes", h.ReplyLikeCount)

	g.POST("/choices/:id/vote", h.Vote)
	g.POST("/choices/:id/unvote", h.Unvote)
	g.GET("/choices/:id/votes", h.ChoiceVoteCount)

	g.POST("/newsfeed/:id/read", h.MarkNewsFeedRead)

	g.POST("/files", h.UploadFile)
	g.POST("/notifications", h.SendNotification)
}

// abortWithError maps the domain error taxonomy onto HTTP statuses.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch model.KindOf(err) {
	case model.ErrNotFound:
		status = http.StatusNotFound
	case model.ErrDuplicateIdentity,
		model.ErrAlreadyFollowing, model.ErrNotFollowing,
		model.ErrAlreadyLiked, model.ErrNotLiked,
		model.ErrAlreadyVoted, model.ErrNotVoted:
		status = http.StatusConflict
	case model.ErrInvalidCredentials, model.ErrInvalidToken, model.ErrExpiredToken:
		status = http.StatusUnauthorized
	case model.ErrVisibilityDenied:
		status = http.StatusForbidden
	case model.ErrValidation:
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
	c.Abort()
}

type signUpRequest struct {
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	Password          string     `json:"password"`
	Bio               string     `json:"bio"`
	Location          string     `json:"location"`
	Website           string     `json:"website"`
	BirthDate         *time.Time `json:"birth_date"`
	Picture           string     `json:"picture"`
	BackgroundPicture string     `json:"background_picture"`
}

func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	user, err := h.Store.CreateUser(store.CreateUserInput{
		Username:          req.Username,
		Email:             req.Email,
		Password:          req.Password,
		Bio:               req.Bio,
		Location:          req.Location,
		Website:           req.Website,
		BirthDate:         req.BirthDate,
		Picture:           req.Picture,
		BackgroundPicture: req.BackgroundPicture,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserDTO(user))
}

type logInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) LogIn(c *gin.Context) {
	var req logInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	user, err := h.Store.Authenticate(req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	bundle, err := h.Auth.IssueToken(user)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	claims, err := h.Auth.Refresh(req.RefreshToken)
	if err != nil {
		abortWithError(c, err)
		return
	}
	user, err := h.Store.GetUser(claims.Subject)
	if err != nil {
		abortWithError(c, err)
		return
	}
	bundle, err := h.Auth.IssueToken(user)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Store.ListUsers()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTOs(users))
}

func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.Store.GetUser(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTO(user))
}

type changePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	if err := h.Store.ChangePassword(c.Param("id"), req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeactivateUser(c *gin.Context) {
	user, err := h.Store.DeactivateUser(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTO(user))
}

func (h *Handler) ActivateUser(c *gin.Context) {
	user, err := h.Store.ActivateUser(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTO(user))
}

type followRequest struct {
	TargetID string `json:"target_id"`
}

func (h *Handler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	if err := h.Store.Follow(c.Param("id"), req.TargetID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Unfollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	if err := h.Store.Unfollow(c.Param("id"), req.TargetID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Followers(c *gin.Context) {
	users, err := h.Store.Followers(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTOs(users))
}

func (h *Handler) Following(c *gin.Context) {
	users, err := h.Store.Following(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTOs(users))
}

func (h *Handler) TweetsByUser(c *gin.Context) {
	tweets, err := h.Store.TweetsByUser(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTweetDTOs(tweets))
}

func (h *Handler) Home(c *gin.Context) {
	tweets, err := h.Store.Home(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTweetDTOs(tweets))
}

func (h *Handler) NewsFeed(c *gin.Context) {
	entries, err := h.Store.NewsFeedFor(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNewsFeedDTOs(entries))
}

func (h *Handler) ListTweets(c *gin.Context) {
	tweets, err := h.Store.ListTweets()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTweetDTOs(tweets))
}

type pollRequest struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
}

type createTweetRequest struct {
	UserID          string       `json:"user_id"`
	Context         string       `json:"context"`
	File            string       `json:"file"`
	PeopleYouFollow bool         `json:"people_you_follow"`
	Poll            *pollRequest `json:"poll"`
}

func (h *Handler) CreateTweet(c *gin.Context) {
	var req createTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	input := store.CreateTweetInput{
		UserID:          req.UserID,
		Context:         req.Context,
		File:            req.File,
		PeopleYouFollow: req.PeopleYouFollow,
	}
	if req.Poll != nil {
		input.Poll = &store.PollInput{Question: req.Poll.Question, Choices: req.Poll.Choices}
	}
	tweet, err := h.Store.CreateTweet(input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTweetDTO(tweet))
}

func (h *Handler) GetTweet(c *gin.Context) {
	tweet, err := h.Store.GetTweet(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTweetDTO(tweet))
}

func (h *Handler) DeleteTweet(c *gin.Context) {
	if err := h.Store.DeleteTweet(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type actorRequest struct {
	UserID string `json:"user_id"`
}

func (h *Handler) Retweet(c *gin.Context) {
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	tweet, err := h.Store.Retweet(req.UserID, c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTweetDTO(tweet))
}

func (h *Handler) RepliesForTweet(c *gin.Context) {
	replies, err := h.Store.RepliesForTweet(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReplyDTOs(replies))
}

func (h *Handler) LikeTweet(c *gin.Context) {
	h.like(c, model.TweetTarget(c.Param("id")))
}

func (h *Handler) UnlikeTweet(c *gin.Context) {
	h.unlike(c, model.TweetTarget(c.Param("id")))
}

func (h *Handler) TweetLikeCount(c *gin.Context) {
	h.likeCount(c, model.TweetTarget(c.Param("id")))
}

type createReplyRequest struct {
	TweetID  string  `json:"tweet_id"`
	ParentID *string `json:"parent_id"`
	UserID   string  `json:"user_id"`
	Context  string  `json:"context"`
	File     string  `json:"file"`
}

func (h *Handler) CreateReply(c *gin.Context) {
	var req createReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	reply, err := h.Store.CreateReply(store.CreateReplyInput{
		TweetID:  req.TweetID,
		ParentID: req.ParentID,
		UserID:   req.UserID,
		Context:  req.Context,
		File:     req.File,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReplyDTO(reply))
}

func (h *Handler) GetReply(c *gin.Context) {
	reply, err := h.Store.GetReply(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReplyDTO(reply))
}

func (h *Handler) DeleteReply(c *gin.Context) {
	if err := h.Store.DeleteReply(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Children(c *gin.Context) {
	replies, err := h.Store.Children(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReplyDTOs(replies))
}

func (h *Handler) Descendants(c *gin.Context) {
	replies, err := h.Store.Descendants(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReplyDTOs(replies))
}

func (h *Handler) RetweetReply(c *gin.Context) {
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	tweet, err := h.Store.RetweetReply(req.UserID, c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTweetDTO(tweet))
}

func (h *Handler) LikeReply(c *gin.Context) {
	h.like(c, model.ReplyTarget(c.Param("id")))
}

func (h *Handler) UnlikeReply(c *gin.Context) {
	h.unlike(c, model.ReplyTarget(c.Param("id")))
}

func (h *Handler) ReplyLikeCount(c *gin.Context) {
	h.likeCount(c, model.ReplyTarget(c.Param("id")))
}

func (h *Handler) like(c *gin.Context, target model.LikeTarget) {
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	like, err := h.Store.Like(req.UserID, target)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toLikeDTO(like))
}

func (h *Handler) unlike(c *gin.Context, target model.LikeTarget) {
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	if err := h.Store.Unlike(req.UserID, target); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) likeCount(c *gin.Context, target model.LikeTarget) {
	count, err := h.Store.LikeCount(target)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) Vote(c *gin.Context) {
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	vote, err := h.Store.Vote(req.UserID, c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toVoteDTO(vote))
}

func (h *Handler) Unvote(c *gin.Context) {
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	if err := h.Store.Unvote(req.UserID, c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ChoiceVoteCount(c *gin.Context) {
	count, err := h.Store.VoteCount(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) MarkNewsFeedRead(c *gin.Context) {
	entry, err := h.Store.MarkNewsFeedRead(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNewsFeedDTO(entry))
}

// UploadFile stores an attachment and returns the reference plus its
// resolved url. The client persists the reference on a later tweet or
// reply create call.
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, model.NewValidationError("file is required"))
		return
	}
	src, err := file.Open()
	if err != nil {
		abortWithError(c, err)
		return
	}
	defer src.Close()

	reference, err := h.Files.Store(file.Filename, src)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"reference": reference,
		"url":       h.Files.GetUrlFromReference(reference),
	})
}

type notificationRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h *Handler) SendNotification(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.NewValidationError(err.Error()))
		return
	}
	err := h.Notifier.Send(c.Request.Context(), notification.Message{
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}
