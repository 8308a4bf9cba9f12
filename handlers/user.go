package handlers

import (
	"net/http"

	"attendance/auth"
	"attendance/db"
	"attendance/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserLoginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type UserCreateRequest struct {
	Name        string              `form:"name" binding:"required"`
	Email       string              `form:"email" binding:"required"`
	Password    string              `form:"password" binding:"required"`
	Permissions []models.Permission `form:"permissions"`
}

type UserInfo struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func UserLogin(c *gin.Context) {
	postReq := UserLoginRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, success := models.UserLogin(postReq.Email, postReq.Password)
	if !success {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	permissions := user.GetPermissions()
	session := auth.LoadSession(c)
	session.Set("id", user.ID)
	session.Save()
	c.JSON(http.StatusOK, gin.H{"error": "", "name": user.Name, "permissions": permissions})
}

func UserLogout(c *gin.Context, user *models.User) {
	auth.LoadSession(c).LogoutUser()
	c.JSON(http.StatusOK, OKResponse)
}

func UserSave(c *gin.Context, user *models.User) {
	postReq := UserCreateRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := models.UserCreate(postReq.Name, postReq.Email, postReq.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	for _, permission := range postReq.Permissions {
		grant := models.Grant{
			GrantorID:  user.ID,
			UserID:     created.ID,
			Permission: permission,
		}
		if err = db.Instance.Create(&grant).Error; err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": created.ID})
}

func UserGetStatus(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, gin.H{"error": "", "name": user.Name, "permissions": user.GetPermissions()})
}

func UserList(c *gin.Context, user *models.User) {
	rows, err := db.Instance.Table("users").Select("id, name").Order("created_at DESC").Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []UserInfo{}
	for rows.Next() {
		userInfo := UserInfo{}
		if err = rows.Scan(&userInfo.ID, &userInfo.Name); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		result = append(result, userInfo)
	}
	c.JSON(http.StatusOK, result)
}
