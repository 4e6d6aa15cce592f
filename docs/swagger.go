package docs

const helloworldPaths = `{
    "/": {"get": {"tags": ["helloworld"], "summary": "Greet the world", "responses": {"200": {"description": "OK"}}}},
    "/print-hello/{times}": {"get": {
        "tags": ["helloworld"], "summary": "Repeat the greeting",
        "parameters": [{"name": "times", "in": "path", "required": true, "type": "integer"}],
        "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}}
    }},
    "/get-blogs": {"get": {
        "tags": ["helloworld"], "summary": "List blogs",
        "parameters": [{"name": "limit", "in": "query", "type": "integer", "default": 10}],
        "responses": {"200": {"description": "OK"}}
    }},
    "/details/{id}/comments": {"get": {
        "tags": ["helloworld"], "summary": "List comments of a blog",
        "parameters": [
            {"name": "id", "in": "path", "required": true, "type": "integer"},
            {"name": "limit", "in": "query", "type": "integer", "default": 5},
            {"name": "format", "in": "query", "type": "boolean", "default": true}
        ],
        "responses": {"200": {"description": "OK"}}
    }}
}`

const recipesPaths = `{
    "/recipe": {
        "get": {"tags": ["recipes"], "summary": "List recipes", "responses": {"200": {"description": "OK"}}},
        "post": {"tags": ["recipes"], "summary": "Create a recipe", "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}
    },
    "/recipe/{id}": {
        "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
        "get": {"tags": ["recipes"], "summary": "Get a recipe", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}}},
        "put": {"tags": ["recipes"], "summary": "Update a recipe", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}, "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}}},
        "delete": {"tags": ["recipes"], "summary": "Delete a recipe", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}
    }
}`

const jwtauthPaths = `{
    "/users/": {"get": {"tags": ["Database Integration"], "summary": "List users", "responses": {"200": {"description": "OK"}, "404": {"description": "No users", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
    "/register/": {"post": {"tags": ["Auth"], "summary": "Register a user", "responses": {"200": {"description": "OK"}, "400": {"description": "User already exists!", "schema": {"$ref": "#/definitions/ErrorResponse"}}, "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
    "/login/": {"post": {"tags": ["Auth"], "summary": "Check credentials", "responses": {"200": {"description": "OK"}, "400": {"description": "Incorrect password!", "schema": {"$ref": "#/definitions/ErrorResponse"}}, "404": {"description": "User Not Found!", "schema": {"$ref": "#/definitions/ErrorResponse"}}, "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
    "/jwt-login/": {"post": {
        "tags": ["Auth"], "summary": "Issue an access token", "consumes": ["application/x-www-form-urlencoded"],
        "parameters": [
            {"name": "username", "in": "formData", "required": true, "type": "string"},
            {"name": "password", "in": "formData", "required": true, "type": "string"}
        ],
        "responses": {"200": {"description": "OK"}, "401": {"description": "Incorrect Credentials!", "schema": {"$ref": "#/definitions/ErrorResponse"}}, "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ErrorResponse"}}}
    }},
    "/profile/": {
        "get": {"tags": ["Profile"], "summary": "Current profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}}},
        "put": {"tags": ["Profile"], "summary": "Update the current profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}, "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}
    },
    "/admin/": {"get": {"tags": ["Role Based"], "summary": "Admin only area", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}, "403": {"description": "You are not admin.", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}}
}`

const instaclonePaths = `{
    "/create": {"post": {"tags": ["posts"], "summary": "Create a post from an image URL", "responses": {"200": {"description": "OK"}, "400": {"description": "Post or user does not exist!", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
    "/users": {
        "get": {"tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}}},
        "post": {"tags": ["users"], "summary": "Create a user", "responses": {"200": {"description": "OK"}, "400": {"description": "User already exists!", "schema": {"$ref": "#/definitions/ErrorResponse"}}, "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}
    },
    "/users/{uid}": {
        "parameters": [{"name": "uid", "in": "path", "required": true, "type": "string", "format": "uuid"}],
        "get": {"tags": ["users"], "summary": "Get a user", "responses": {"200": {"description": "OK"}, "404": {"description": "User not found!", "schema": {"$ref": "#/definitions/ErrorResponse"}}}},
        "put": {"tags": ["users"], "summary": "Update a user", "responses": {"200": {"description": "OK"}, "404": {"description": "User not found!", "schema": {"$ref": "#/definitions/ErrorResponse"}}}},
        "delete": {"tags": ["users"], "summary": "Delete a user", "responses": {"204": {"description": "No Content"}, "404": {"description": "User not found!", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}
    },
    "/posts": {
        "get": {"tags": ["posts"], "summary": "List posts", "parameters": [{"name": "user_id", "in": "query", "type": "string", "format": "uuid"}], "responses": {"200": {"description": "OK"}}},
        "post": {
            "tags": ["posts"], "summary": "Upload a post", "consumes": ["multipart/form-data"],
            "parameters": [
                {"name": "image", "in": "formData", "required": true, "type": "file"},
                {"name": "caption", "in": "formData", "type": "string"},
                {"name": "user_id", "in": "formData", "required": true, "type": "string", "format": "uuid"}
            ],
            "responses": {
                "200": {"description": "OK"},
                "400": {"description": "Unsupported image format!", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                "413": {"description": "Image is too large!", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                "502": {"description": "Could not upload image!", "schema": {"$ref": "#/definitions/ErrorResponse"}}
            }
        }
    },
    "/posts/{uid}": {
        "parameters": [{"name": "uid", "in": "path", "required": true, "type": "string", "format": "uuid"}],
        "get": {"tags": ["posts"], "summary": "Get a post", "responses": {"200": {"description": "OK"}, "404": {"description": "Post not found!", "schema": {"$ref": "#/definitions/ErrorResponse"}}}},
        "put": {"tags": ["posts"], "summary": "Update a caption", "responses": {"200": {"description": "OK"}, "404": {"description": "Post not found!", "schema": {"$ref": "#/definitions/ErrorResponse"}}}},
        "delete": {"tags": ["posts"], "summary": "Delete a post", "responses": {"204": {"description": "No Content"}, "404": {"description": "Post not found!", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}
    },
    "/posts/{uid}/comments": {"get": {"tags": ["comments"], "summary": "List comments of a post", "parameters": [{"name": "uid", "in": "path", "required": true, "type": "string", "format": "uuid"}], "responses": {"200": {"description": "OK"}}}},
    "/posts/{uid}/likes": {
        "parameters": [{"name": "uid", "in": "path", "required": true, "type": "string", "format": "uuid"}],
        "get": {"tags": ["likes"], "summary": "List likes of a post", "responses": {"200": {"description": "OK"}}},
        "post": {"tags": ["likes"], "summary": "Like a post", "responses": {"204": {"description": "No Content"}, "400": {"description": "Already liked!", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}
    },
    "/posts/{uid}/likes/{user_id}": {"delete": {"tags": ["likes"], "summary": "Unlike a post", "responses": {"204": {"description": "No Content"}, "404": {"description": "Like not found!", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
    "/comments": {"post": {"tags": ["comments"], "summary": "Comment on a post", "responses": {"200": {"description": "OK"}, "400": {"description": "Post or user does not exist!", "schema": {"$ref": "#/definitions/ErrorResponse"}}, "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
    "/comments/{uid}": {"delete": {"tags": ["comments"], "summary": "Delete a comment", "responses": {"204": {"description": "No Content"}, "404": {"description": "Comment not found!", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
    "/comments/{uid}/likes": {
        "parameters": [{"name": "uid", "in": "path", "required": true, "type": "string", "format": "uuid"}],
        "get": {"tags": ["likes"], "summary": "List likes of a comment", "responses": {"200": {"description": "OK"}}},
        "post": {"tags": ["likes"], "summary": "Like a comment", "responses": {"204": {"description": "No Content"}, "400": {"description": "Already liked!", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}
    },
    "/comments/{uid}/likes/{user_id}": {"delete": {"tags": ["likes"], "summary": "Unlike a comment", "responses": {"204": {"description": "No Content"}, "404": {"description": "Like not found!", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}}
}`

func init() {
	register("helloworld", "Hello World API", "Greetings and a blog listing demo", helloworldPaths)
	register("recipes", "Recipes API", "CRUD over recipes", recipesPaths)
	register("jwtauth", "JWT Auth API", "Registration, login and bearer protected profiles", jwtauthPaths)
	register("instaclone", "Instaclone API", "Users, photo posts, comments and likes", instaclonePaths)
}
