// Package docs 由 swag 注解整理而来，供 gin-swagger 使用
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "按发布时间倒序，每页 10 条，整页缓存 20 秒",
                "produces": ["application/json"],
                "tags": ["信息流"],
                "summary": "全部帖子",
                "parameters": [{"type": "integer", "default": 1, "description": "页码", "name": "page", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/group/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["信息流"],
                "summary": "分组帖子",
                "parameters": [
                    {"type": "string", "description": "分组 slug", "name": "slug", "in": "path", "required": true},
                    {"type": "integer", "default": 1, "description": "页码", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/profile/{username}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["信息流"],
                "summary": "作者主页",
                "parameters": [
                    {"type": "string", "description": "用户名", "name": "username", "in": "path", "required": true},
                    {"type": "integer", "default": 1, "description": "页码", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/profile/{username}/follow": {
            "get": {
                "produces": ["application/json"],
                "tags": ["关系链"],
                "summary": "关注作者",
                "parameters": [{"type": "string", "description": "作者用户名", "name": "username", "in": "path", "required": true}],
                "responses": {"302": {"description": "Found", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/profile/{username}/unfollow": {
            "get": {
                "produces": ["application/json"],
                "tags": ["关系链"],
                "summary": "取消关注",
                "parameters": [{"type": "string", "description": "作者用户名", "name": "username", "in": "path", "required": true}],
                "responses": {
                    "302": {"description": "Found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/follow": {
            "get": {
                "produces": ["application/json"],
                "tags": ["信息流"],
                "summary": "关注信息流",
                "parameters": [{"type": "integer", "default": 1, "description": "页码", "name": "page", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/new": {
            "get": {
                "produces": ["application/json"],
                "tags": ["帖子"],
                "summary": "新建帖子表单",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "consumes": ["application/json", "multipart/form-data", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["帖子"],
                "summary": "新建帖子",
                "parameters": [{"description": "帖子内容", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.postRequest"}}],
                "responses": {
                    "302": {"description": "Found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/posts/{username}/{post_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["帖子"],
                "summary": "帖子详情",
                "parameters": [
                    {"type": "string", "description": "作者用户名", "name": "username", "in": "path", "required": true},
                    {"type": "string", "description": "帖子ID", "name": "post_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/posts/{username}/{post_id}/edit": {
            "get": {
                "produces": ["application/json"],
                "tags": ["帖子"],
                "summary": "编辑帖子表单",
                "parameters": [
                    {"type": "string", "description": "作者用户名", "name": "username", "in": "path", "required": true},
                    {"type": "string", "description": "帖子ID", "name": "post_id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "consumes": ["application/json", "multipart/form-data", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["帖子"],
                "summary": "编辑帖子",
                "parameters": [
                    {"type": "string", "description": "作者用户名", "name": "username", "in": "path", "required": true},
                    {"type": "string", "description": "帖子ID", "name": "post_id", "in": "path", "required": true},
                    {"description": "修改内容", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.postRequest"}}
                ],
                "responses": {"302": {"description": "Found", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/posts/{username}/{post_id}/comment": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["评论"],
                "summary": "发表评论",
                "parameters": [
                    {"type": "string", "description": "作者用户名", "name": "username", "in": "path", "required": true},
                    {"type": "string", "description": "帖子ID", "name": "post_id", "in": "path", "required": true},
                    {"description": "评论内容", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.commentRequest"}}
                ],
                "responses": {"302": {"description": "Found", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/auth/signup": {
            "post": {
                "produces": ["application/json"],
                "tags": ["用户"],
                "summary": "注册",
                "responses": {"302": {"description": "Found", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/auth/login": {
            "get": {
                "produces": ["application/json"],
                "tags": ["用户"],
                "summary": "登录表单",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "produces": ["application/json"],
                "tags": ["用户"],
                "summary": "登录",
                "responses": {
                    "302": {"description": "Found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/auth/contact": {
            "get": {
                "produces": ["application/json"],
                "tags": ["用户"],
                "summary": "联系表单",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["用户"],
                "summary": "退出登录",
                "responses": {"302": {"description": "Found", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["其他"],
                "summary": "健康检查",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        }
    },
    "definitions": {
        "handler.commentRequest": {
            "type": "object",
            "properties": {"text": {"type": "string"}}
        },
        "handler.postRequest": {
            "type": "object",
            "properties": {
                "group": {"type": "string"},
                "image": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "data": {},
                "errors": {},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Postboard API",
	Description:      "帖子、分组、评论与关注",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
